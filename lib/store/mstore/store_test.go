package mstore

import (
	"github.com/ValentinKolb/dPaste/lib/store"
	storetesting "github.com/ValentinKolb/dPaste/lib/store/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "MemoryStore", func(t *testing.T) store.IStore {
		return NewMemoryStore()
	})
}

func TestInfo(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	_, err := s.SetIfUnset("a", []byte("1"))
	require.NoError(t, err)
	_, err = s.SetIfUnset("b", []byte("2"))
	require.NoError(t, err)

	info, err := s.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, store.TypeMemory, info.Type)
	assert.Equal(t, 2, info.Documents)
}
