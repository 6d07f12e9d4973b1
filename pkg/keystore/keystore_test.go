package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testProfile(name string) *Profile {
	return &Profile{
		Name:      name,
		Seed:      "1001011",
		Taps:      []int{6, 5},
		Width:     7,
		KeyStream: "1110010",
		Verified:  true,
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(testProfile("session")))

	loaded, err := store.Load("session")
	require.NoError(t, err)

	assert.Equal(t, "session", loaded.Name)
	assert.Equal(t, "1001011", loaded.Seed)
	assert.Equal(t, []int{6, 5}, loaded.Taps)
	assert.Equal(t, 7, loaded.Width)
	assert.Equal(t, "1110010", loaded.KeyStream)
	assert.True(t, loaded.Verified)
	assert.False(t, loaded.Created.IsZero())
}

func TestSaveRejectsDuplicates(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(testProfile("dup")))

	err := store.Save(testProfile("dup"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSaveRejectsInvalidProfiles(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(&Profile{KeyStream: "101"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	err = store.Save(&Profile{Name: "empty-stream"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "keystream")
}

func TestLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("ghost")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(testProfile("bravo")))
	require.NoError(t, store.Save(testProfile("alpha")))

	profiles, err := store.List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alpha", profiles[0].Name)
	assert.Equal(t, "bravo", profiles[1].Name)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(testProfile("gone")))
	require.NoError(t, store.Delete("gone"))

	_, err := store.Load("gone")
	assert.Error(t, err)

	err = store.Delete("gone")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
