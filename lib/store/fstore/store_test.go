package fstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/dPaste/lib/store"
	storetesting "github.com/ValentinKolb/dPaste/lib/store/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.IStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "FileStore", newTestStore)
	storetesting.RunPersistenceTests(t, "FileStore", NewFileStore)
}

func TestNewFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFileStore_EmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestKeyToPath_StaysInBaseDir(t *testing.T) {
	base := "/data"
	for _, key := range []string{"../../etc/passwd", "a/b", "."} {
		path := KeyToPath(base, key)
		rel, err := filepath.Rel(base, path)
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(rel, ".."), "key %q escaped to %s", key, path)
		assert.Len(t, filepath.Base(path), 64)
	}
}

func TestSetIfUnset_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.SetIfUnset("key", []byte("first"))
	require.NoError(t, err)
	stored, err := s.SetIfUnset("key", []byte("second"))
	require.NoError(t, err)
	require.False(t, stored)

	shard := filepath.Dir(KeyToPath(dir, "key"))
	entries, err := os.ReadDir(shard)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), tmpPrefix))

	info, err := s.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, 1, info.Documents)
	assert.Equal(t, store.TypeFile, info.Type)
}

func TestGet_IOError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	// a directory where the document file should be cannot be read
	path := KeyToPath(dir, "broken")
	require.NoError(t, os.MkdirAll(path, 0o700))

	_, _, err = s.Get("broken")
	require.Error(t, err)
	var storeErr *store.Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, store.RetCIOError, storeErr.Code)
}
