package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbctl", "credentials.yaml")
	store := NewFileStore(path)

	// Missing file reads as no credential.
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("jwt-token"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "credential file is owner-only")
	}

	require.NoError(t, store.Clear())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing an empty store is a no-op.
	require.NoError(t, store.Clear())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\tnot: [valid yaml"), 0600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestFileStore_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	store := NewFileStore(path)

	require.NoError(t, store.Save("first"))
	require.NoError(t, store.Save("second"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}
