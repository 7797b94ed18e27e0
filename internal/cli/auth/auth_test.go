package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func exerciseStore(t *testing.T, store TokenStore) {
	t.Helper()

	_, err := store.LoadToken()
	assert.ErrorIs(t, err, ErrNoToken)

	token, err := Peek(store)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SaveToken("tok-1"))
	token, err = store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.SaveToken("tok-2"))
	token, err = Peek(store)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	require.NoError(t, store.DeleteToken())
	_, err = store.LoadToken()
	assert.ErrorIs(t, err, ErrNoToken)

	// Deleting twice is fine
	require.NoError(t, store.DeleteToken())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(""))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	require.NoError(t, store.SaveToken("abc"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	require.NoError(t, store.DeleteToken())

	exerciseStore(t, store)
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()
	exerciseStore(t, NewKeyringStore("flightdeck-test"))
}
