package mstore

import (
	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
	"sync/atomic"
)

type storeImpl struct {
	docs   *xsync.MapOf[string, []byte]
	closed atomic.Bool
}

// NewMemoryStore creates a new in-memory store instance.
// Documents are kept in a concurrent map and are lost when the process exits.
func NewMemoryStore() store.IStore {
	return &storeImpl{
		docs: xsync.NewMapOf[string, []byte](),
	}
}

// copyValue is used on every write and read so callers never share memory with the map
func copyValue(value []byte) []byte {
	c := make([]byte, len(value))
	copy(c, value)
	return c
}

// checkOpen returns an error once Close was called
func (s *storeImpl) checkOpen() error {
	if s.closed.Load() {
		return store.NewError(store.RetCClosed, "memory store is closed")
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) SetIfUnset(key string, value []byte) (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if err := store.ValidateKey(key); err != nil {
		return false, err
	}
	// LoadOrStore is atomic per key, the loser of a race sees loaded=true
	_, loaded := s.docs.LoadOrStore(key, copyValue(value))
	return !loaded, nil
}

func (s *storeImpl) Set(key string, value []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	s.docs.Store(key, copyValue(value))
	return nil
}

func (s *storeImpl) Get(key string) ([]byte, bool, error) {
	if err := s.checkOpen(); err != nil {
		return nil, false, err
	}
	val, ok := s.docs.Load(key)
	if !ok {
		return nil, false, nil
	}
	return copyValue(val), true, nil
}

func (s *storeImpl) Has(key string) (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	_, ok := s.docs.Load(key)
	return ok, nil
}

func (s *storeImpl) GetInfo() (store.Info, error) {
	return store.Info{
		Type:      store.TypeMemory,
		Documents: s.docs.Size(),
	}, nil
}

func (s *storeImpl) Close() error {
	s.closed.Store(true)
	s.docs.Clear()
	return nil
}
