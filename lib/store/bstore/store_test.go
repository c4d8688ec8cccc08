package bstore

import (
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/dPaste/lib/store"
	storetesting "github.com/ValentinKolb/dPaste/lib/store/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "BoltStore", func(t *testing.T) store.IStore {
		s, err := NewBoltStore(t.TempDir())
		require.NoError(t, err)
		return s
	})
	storetesting.RunPersistenceTests(t, "BoltStore", NewBoltStore)
}

func TestNewBoltStore_EmptyDir(t *testing.T) {
	_, err := NewBoltStore("")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	s, err := NewBoltStore(dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.SetIfUnset("a", []byte("1"))
	require.NoError(t, err)
	require.NoError(t, s.Set("b", []byte("2")))

	info, err := s.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, store.TypeBolt, info.Type)
	assert.Equal(t, 2, info.Documents)
	assert.Equal(t, filepath.Join(dir, FileName), info.Path)
}

func TestClosedCode(t *testing.T) {
	s, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.SetIfUnset("a", []byte("1"))
	var storeErr *store.Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, store.RetCClosed, storeErr.Code)
}
