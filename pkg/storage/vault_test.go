package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.vault")
	vault := NewVault(path)

	data := []byte(`{"name":"session","key_stream":"1110010"}`)
	passphrase := []byte("test passphrase")

	require.NoError(t, vault.Save(data, passphrase))
	assert.True(t, vault.Exists())

	loaded, err := vault.Load(passphrase)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestVaultWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.vault")
	vault := NewVault(path)

	require.NoError(t, vault.Save([]byte("secret"), []byte("right")))

	_, err := vault.Load([]byte("wrong"))
	assert.Error(t, err)
}

func TestVaultEmptyPassphrase(t *testing.T) {
	vault := NewVault(filepath.Join(t.TempDir(), "v"))

	assert.Error(t, vault.Save([]byte("data"), nil))

	_, err := vault.Load(nil)
	assert.Error(t, err)
}

func TestVaultDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.vault")
	vault := NewVault(path)

	require.NoError(t, vault.Save([]byte("data"), []byte("pass")))
	require.NoError(t, vault.Delete())
	assert.False(t, vault.Exists())

	// Deleting a missing vault is a no-op.
	assert.NoError(t, vault.Delete())
}
