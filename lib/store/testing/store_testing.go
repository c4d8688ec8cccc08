package testing

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoreFactory creates a new, empty store for a single test
type StoreFactory func(t *testing.T) store.IStore

// OpenFunc opens a persistent store rooted at dir
type OpenFunc func(dir string) (store.IStore, error)

// RunStoreTests runs the conformance suite every store.IStore implementation must pass.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("SetIfUnset&Get", func(t *testing.T) {
			testSetIfUnsetGet(t, factory(t))
		})

		t.Run("NoOverwrite", func(t *testing.T) {
			testNoOverwrite(t, factory(t))
		})

		t.Run("Set", func(t *testing.T) {
			testSet(t, factory(t))
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory(t))
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory(t))
		})

		t.Run("ConcurrentSetIfUnset", func(t *testing.T) {
			testConcurrentSetIfUnset(t, factory(t))
		})

		t.Run("ConcurrentDistinctKeys", func(t *testing.T) {
			testConcurrentDistinctKeys(t, factory(t))
		})

		t.Run("Closed", func(t *testing.T) {
			testClosed(t, factory(t))
		})
	})
}

// RunPersistenceTests checks that documents survive closing and reopening a persistent store.
func RunPersistenceTests(t *testing.T, name string, open OpenFunc) {
	t.Run(name+"/Reopen", func(t *testing.T) {
		dir := t.TempDir()

		s, err := open(dir)
		require.NoError(t, err)
		stored, err := s.SetIfUnset("persisted", []byte("still here"))
		require.NoError(t, err)
		require.True(t, stored)
		require.NoError(t, s.Close())

		s, err = open(dir)
		require.NoError(t, err)
		defer s.Close()

		value, ok, err := s.Get("persisted")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("still here"), value)

		// the key is still taken after reopening
		stored, err = s.SetIfUnset("persisted", []byte("other"))
		require.NoError(t, err)
		assert.False(t, stored)
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetIfUnsetGet(t *testing.T, s store.IStore) {
	defer s.Close()

	stored, err := s.SetIfUnset("test-key", []byte("test-value"))
	require.NoError(t, err)
	assert.True(t, stored)

	value, ok, err := s.Get("test-key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("test-value"), value)

	_, ok, err = s.Get("nonexistent-key")
	require.NoError(t, err)
	assert.False(t, ok, "expected nonexistent key to return loaded=false")

	// Get must return a copy
	value[0] = 'X'
	original, _, err := s.Get("test-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("test-value"), original, "Get should return a copy, not a reference to the stored value")

	// the caller's buffer is not retained either
	buf := []byte("buffered")
	stored, err = s.SetIfUnset("buffer-key", buf)
	require.NoError(t, err)
	require.True(t, stored)
	buf[0] = 'X'
	value, _, err = s.Get("buffer-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("buffered"), value)
}

func testNoOverwrite(t *testing.T, s store.IStore) {
	defer s.Close()

	stored, err := s.SetIfUnset("key", []byte("first"))
	require.NoError(t, err)
	require.True(t, stored)

	stored, err = s.SetIfUnset("key", []byte("second"))
	require.NoError(t, err, "a collision is not an error")
	assert.False(t, stored)

	value, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("first"), value)
}

func testSet(t *testing.T, s store.IStore) {
	defer s.Close()

	require.NoError(t, s.Set("key", []byte("v1")))
	require.NoError(t, s.Set("key", []byte("v2")))

	value, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), value)

	// Set keys are taken for SetIfUnset
	stored, err := s.SetIfUnset("key", []byte("v3"))
	require.NoError(t, err)
	assert.False(t, stored)
}

func testHas(t *testing.T, s store.IStore) {
	defer s.Close()

	ok, err := s.Has("key")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.SetIfUnset("key", []byte("value"))
	require.NoError(t, err)

	ok, err = s.Has("key")
	require.NoError(t, err)
	assert.True(t, ok)
}

func testEdgeCases(t *testing.T, s store.IStore) {
	defer s.Close()

	// empty key
	_, err := s.SetIfUnset("", []byte("value"))
	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr), "expected *store.Error, got %v", err)
	assert.Equal(t, store.RetCInvalidKey, storeErr.Code)
	assert.Error(t, s.Set("", []byte("value")))

	// keys are case-sensitive
	_, err = s.SetIfUnset("CaseKey", []byte("upper"))
	require.NoError(t, err)
	stored, err := s.SetIfUnset("casekey", []byte("lower"))
	require.NoError(t, err)
	assert.True(t, stored)

	// keys that look like paths stay opaque
	for _, key := range []string{"../escape", "a/b/c", "with space", "ünïcödé", ".hidden"} {
		stored, err := s.SetIfUnset(key, []byte(key))
		require.NoError(t, err, "key %q", key)
		assert.True(t, stored, "key %q", key)
		value, ok, err := s.Get(key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(key), value)
	}

	// binary and large values
	binary := []byte{0, 1, 2, 255, 0, 10, 13}
	_, err = s.SetIfUnset("binary", binary)
	require.NoError(t, err)
	value, _, err := s.Get("binary")
	require.NoError(t, err)
	assert.Equal(t, binary, value)

	large := make([]byte, 1<<20)
	for i := range large {
		large[i] = byte(i % 251)
	}
	_, err = s.SetIfUnset("large", large)
	require.NoError(t, err)
	value, _, err = s.Get("large")
	require.NoError(t, err)
	assert.Equal(t, large, value)
}

func testConcurrentSetIfUnset(t *testing.T, s store.IStore) {
	defer s.Close()

	const writers = 64
	var (
		wg      sync.WaitGroup
		winners atomic.Int32
		winner  atomic.Int32
		errs    = make(chan error, writers)
		start   = make(chan struct{})
	)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			stored, err := s.SetIfUnset("contended", []byte(fmt.Sprintf("writer-%d", i)))
			if err != nil {
				errs <- err
				return
			}
			if stored {
				winners.Add(1)
				winner.Store(int32(i))
			}
		}(i)
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), winners.Load(), "exactly one writer must win the key")

	value, ok, err := s.Get("contended")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, fmt.Sprintf("writer-%d", winner.Load()), string(value))
}

func testConcurrentDistinctKeys(t *testing.T, s store.IStore) {
	defer s.Close()

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			stored, err := s.SetIfUnset(key, []byte(key))
			assert.NoError(t, err)
			assert.True(t, stored)
		}(i)
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		key := fmt.Sprintf("key-%d", i)
		value, ok, err := s.Get(key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, key, string(value))
	}

	info, err := s.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, writers, info.Documents)
}

func testClosed(t *testing.T, s store.IStore) {
	require.NoError(t, s.Close())

	_, err := s.SetIfUnset("key", []byte("value"))
	assert.Error(t, err)
	_, _, err = s.Get("key")
	assert.Error(t, err)
}
