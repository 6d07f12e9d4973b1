package test

import (
	"context"
	"testing"

	"github.com/bitseq/lfsrkey/pkg/keystore"
	"github.com/bitseq/lfsrkey/pkg/lfsr"
	"github.com/bitseq/lfsrkey/pkg/seedshare"
	"github.com/bitseq/lfsrkey/pkg/xorcipher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullWorkflow walks the complete pipeline: tap search, keystream
// generation, encryption, profile persistence, and decryption from the
// stored profile.
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	seed := "1001011"
	m := len(seed)

	taps, err := lfsr.FindPrimitiveTaps(ctx, m)
	require.NoError(t, err)

	primitive, err := lfsr.IsPrimitivePolynomial(ctx, m, taps)
	require.NoError(t, err)
	require.True(t, primitive)

	register, err := lfsr.New(seed, taps)
	require.NoError(t, err)

	ks, err := lfsr.GenerateKeyStream(ctx, register)
	require.NoError(t, err)
	assert.Equal(t, 1<<uint(m)-1, ks.Len(), "primitive taps must yield the full period")

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	ciphertext, err := xorcipher.Encrypt(plaintext, ks.Bits)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	store, err := keystore.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(&keystore.Profile{
		Name:      "workflow",
		Seed:      seed,
		Taps:      taps,
		Width:     m,
		KeyStream: ks.Bits,
		Verified:  true,
	}))

	profile, err := store.Load("workflow")
	require.NoError(t, err)

	decrypted, err := xorcipher.Decrypt(ciphertext, profile.KeyStream)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

// TestSeedBackupWorkflow splits a seed into Shamir shares and
// regenerates an identical keystream from the reconstructed seed.
func TestSeedBackupWorkflow(t *testing.T) {
	ctx := context.Background()
	seed := "110100111010"

	shares, err := seedshare.Split(seed, seedshare.Config{Parts: 5, Threshold: 3})
	require.NoError(t, err)

	recovered, err := seedshare.Combine(shares[1:4])
	require.NoError(t, err)
	require.Equal(t, seed, recovered)

	taps, err := lfsr.FindPrimitiveTaps(ctx, len(seed))
	require.NoError(t, err)

	original, err := lfsr.New(seed, taps)
	require.NoError(t, err)
	restored, err := lfsr.New(recovered, taps)
	require.NoError(t, err)

	ksOriginal, err := lfsr.GenerateKeyStream(ctx, original)
	require.NoError(t, err)
	ksRestored, err := lfsr.GenerateKeyStream(ctx, restored)
	require.NoError(t, err)

	assert.Equal(t, ksOriginal.Bits, ksRestored.Bits)
}

// TestBinaryCipherWorkflow exercises the binary XOR mode against a
// generated keystream.
func TestBinaryCipherWorkflow(t *testing.T) {
	register, err := lfsr.New("1111", []int{3, 2})
	require.NoError(t, err)

	ks, err := lfsr.GenerateKeyStream(context.Background(), register)
	require.NoError(t, err)
	require.Equal(t, 15, ks.Len())

	message := "1100101011110001101"
	ciphertext, err := xorcipher.EncryptBinary(message, ks.Bits)
	require.NoError(t, err)

	decrypted, err := xorcipher.DecryptBinary(ciphertext, ks.Bits)
	require.NoError(t, err)
	assert.Equal(t, message, decrypted)
}
