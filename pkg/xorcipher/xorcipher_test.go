package xorcipher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptInvolution(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
		keyStream string
	}{
		{
			name:      "Short message long keystream",
			plaintext: []byte("hello"),
			keyStream: "11010011101",
		},
		{
			name:      "Message longer than keystream",
			plaintext: []byte("a somewhat longer plaintext message"),
			keyStream: "101",
		},
		{
			name:      "Single bit keystream",
			plaintext: []byte{0x00, 0xFF, 0x42},
			keyStream: "1",
		},
		{
			name:      "Empty plaintext",
			plaintext: []byte{},
			keyStream: "1010",
		},
		{
			name:      "Binary plaintext bytes",
			plaintext: bytes.Repeat([]byte{0x00, 0x01, 0xFE}, 40),
			keyStream: "100101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := Encrypt(tt.plaintext, tt.keyStream)
			require.NoError(t, err)
			assert.Len(t, ciphertext, len(tt.plaintext))

			decrypted, err := Decrypt(ciphertext, tt.keyStream)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestEncryptCyclesKeyStream(t *testing.T) {
	// Keystream "101" over 5 bytes must apply bytes '1','0','1','1','0'.
	plaintext := []byte{0, 0, 0, 0, 0}

	ciphertext, err := Encrypt(plaintext, "101")
	require.NoError(t, err)
	assert.Equal(t, []byte{'1', '0', '1', '1', '0'}, ciphertext)
}

func TestEncryptEmptyKeyStream(t *testing.T) {
	_, err := Encrypt([]byte("secret"), "")
	assert.ErrorIs(t, err, ErrEmptyKeyStream)

	_, err = EncryptBinary("1010", "")
	assert.ErrorIs(t, err, ErrEmptyKeyStream)
}

func TestEncryptBinary(t *testing.T) {
	tests := []struct {
		name      string
		bits      string
		keyStream string
		want      string
	}{
		{
			name:      "Equal lengths",
			bits:      "1100",
			keyStream: "1010",
			want:      "0110",
		},
		{
			name:      "Message cycles keystream",
			bits:      "00000",
			keyStream: "101",
			want:      "10110",
		},
		{
			name:      "All ones keystream flips message",
			bits:      "10101",
			keyStream: "1",
			want:      "01010",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncryptBinary(tt.bits, tt.keyStream)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := DecryptBinary(got, tt.keyStream)
			require.NoError(t, err)
			assert.Equal(t, tt.bits, back)
		})
	}
}

func TestEncryptBinaryInvalidSymbol(t *testing.T) {
	_, err := EncryptBinary("10a1", "101")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	assert.Contains(t, err.Error(), "message")

	_, err = EncryptBinary("1001", "1x1")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	assert.Contains(t, err.Error(), "keystream")
}

func BenchmarkEncrypt(b *testing.B) {
	plaintext := bytes.Repeat([]byte("benchmark payload "), 64)
	keyStream := "110100111010110"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encrypt(plaintext, keyStream); err != nil {
			b.Fatal(err)
		}
	}
}
