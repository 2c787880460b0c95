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
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "foodtrack", "token"))

	require.NoError(t, store.Save("tok-abc"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "nope", "token"))

	token, err := store.Load()
	require.NoError(t, err, "a missing token file is not an error")
	assert.Empty(t, token)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStoreAt(path)

	require.NoError(t, store.Save("tok-abc"))
	require.NoError(t, store.Clear())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clear removes the file")

	require.NoError(t, store.Clear(), "clearing an empty store is not an error")
}

func TestFileStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "foodtrack", "token")
	store := NewFileStoreAt(path)
	require.NoError(t, store.Save("tok-abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestFileStore_TrimsTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("tok-abc\n"), 0o600))

	token, err := NewFileStoreAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}
