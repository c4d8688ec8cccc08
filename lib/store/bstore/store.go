package bstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ValentinKolb/dPaste/lib/store"
	"go.etcd.io/bbolt"
)

const (
	// FileName is the name of the database file inside the data directory
	FileName = "documents.db"

	openTimeout = 5 * time.Second
)

var bucketDocuments = []byte("documents")

type storeImpl struct {
	db   *bbolt.DB
	path string
}

// NewBoltStore opens or creates the bbolt database below dataDir.
// The directory is created if it does not exist.
func NewBoltStore(dataDir string) (store.IStore, error) {
	if dataDir == "" {
		return nil, store.NewError(store.RetCInternalError, "bolt store needs a data directory")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, store.WrapError(store.RetCIOError, "create data directory", err)
	}

	path := filepath.Join(dataDir, FileName)
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, store.WrapError(store.RetCIOError, "open bolt db", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketDocuments); err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketDocuments, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, store.WrapError(store.RetCIOError, "create buckets", err)
	}

	return &storeImpl{db: db, path: path}, nil
}

// ioError wraps errors returned by bbolt, a closed database gets its own code
func ioError(msg string, err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return store.WrapError(store.RetCClosed, msg, err)
	}
	return store.WrapError(store.RetCIOError, msg, err)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) SetIfUnset(key string, value []byte) (bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return false, err
	}

	stored := false
	// bbolt allows one writable transaction at a time, the check and the put cannot interleave
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		if b.Get([]byte(key)) != nil {
			return nil
		}
		if err := b.Put([]byte(key), value); err != nil {
			return err
		}
		stored = true
		return nil
	})
	if err != nil {
		return false, ioError("put document", err)
	}
	return stored, nil
}

func (s *storeImpl) Set(key string, value []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(key), value)
	})
	if err != nil {
		return ioError("put document", err)
	}
	return nil
}

func (s *storeImpl) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocuments).Get([]byte(key))
		if data == nil {
			return nil
		}
		// data is only valid during the transaction
		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	if err != nil {
		return nil, false, ioError("get document", err)
	}
	return value, value != nil, nil
}

func (s *storeImpl) Has(key string) (bool, error) {
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketDocuments).Get([]byte(key)) != nil
		return nil
	})
	if err != nil {
		return false, ioError("get document", err)
	}
	return found, nil
}

func (s *storeImpl) GetInfo() (store.Info, error) {
	info := store.Info{Type: store.TypeBolt, Path: s.path}
	err := s.db.View(func(tx *bbolt.Tx) error {
		info.Documents = tx.Bucket(bucketDocuments).Stats().KeyN
		return nil
	})
	if err != nil {
		return info, ioError("read stats", err)
	}
	return info, nil
}

func (s *storeImpl) Close() error {
	return s.db.Close()
}
