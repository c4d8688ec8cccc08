package fstore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/ValentinKolb/dPaste/lib/store"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600

	// tmpPrefix marks files that are still being written, they are never addressed by a key
	tmpPrefix = ".tmp-"
)

type storeImpl struct {
	baseDir string
	closed  atomic.Bool
}

// NewFileStore creates a file based store below baseDir.
// The directory is created if it does not exist.
func NewFileStore(baseDir string) (store.IStore, error) {
	if baseDir == "" {
		return nil, store.NewError(store.RetCInternalError, "file store needs a data directory")
	}
	if err := os.MkdirAll(baseDir, dirPerm); err != nil {
		return nil, store.WrapError(store.RetCIOError, "create data directory", err)
	}
	return &storeImpl{baseDir: baseDir}, nil
}

// KeyToPath converts a key to its filesystem path.
// The key is hashed, so arbitrary key strings can never escape baseDir.
// The first byte of the hash (2 hex chars) is used as a subdirectory for sharding: {base}/{ab}/{abcdef...}
func KeyToPath(baseDir, key string) string {
	sum := sha256.Sum256([]byte(key))
	hexHash := hex.EncodeToString(sum[:])
	return filepath.Join(baseDir, hexHash[:2], hexHash)
}

func (s *storeImpl) checkKey(key string) error {
	if s.closed.Load() {
		return store.NewError(store.RetCClosed, "file store is closed")
	}
	return store.ValidateKey(key)
}

// writeTemp writes value to a new temporary file next to path and returns its name.
// The file is fully written and synced before the caller links or renames it into place.
func writeTemp(path string, value []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(dir, tmpPrefix+"*")
	if err != nil {
		return "", err
	}
	name := f.Name()

	if _, err = f.Write(value); err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) SetIfUnset(key string, value []byte) (bool, error) {
	if err := s.checkKey(key); err != nil {
		return false, err
	}

	path := KeyToPath(s.baseDir, key)
	tmp, err := writeTemp(path, value)
	if err != nil {
		return false, store.WrapError(store.RetCIOError, "write document", err)
	}
	defer os.Remove(tmp)

	// link(2) fails with EEXIST if path exists, this is the atomic create-if-absent
	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, store.WrapError(store.RetCIOError, "link document", err)
	}
	return true, nil
}

func (s *storeImpl) Set(key string, value []byte) error {
	if err := s.checkKey(key); err != nil {
		return err
	}

	path := KeyToPath(s.baseDir, key)
	tmp, err := writeTemp(path, value)
	if err != nil {
		return store.WrapError(store.RetCIOError, "write document", err)
	}

	// rename replaces atomically, readers see either the old or the new document
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return store.WrapError(store.RetCIOError, "replace document", err)
	}
	return nil
}

func (s *storeImpl) Get(key string) ([]byte, bool, error) {
	if err := s.checkKey(key); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(KeyToPath(s.baseDir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, store.WrapError(store.RetCIOError, "read document", err)
	}
	return data, true, nil
}

func (s *storeImpl) Has(key string) (bool, error) {
	if err := s.checkKey(key); err != nil {
		return false, err
	}

	_, err := os.Stat(KeyToPath(s.baseDir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, store.WrapError(store.RetCIOError, "stat document", err)
	}
	return true, nil
}

// GetInfo counts documents by scanning the shard directories.
func (s *storeImpl) GetInfo() (store.Info, error) {
	info := store.Info{Type: store.TypeFile, Path: s.baseDir}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return info, store.WrapError(store.RetCIOError, "read data directory", err)
	}
	for _, entry := range entries {
		// Shard directories are 2-character hex strings
		if !entry.IsDir() || len(entry.Name()) != 2 {
			continue
		}
		files, err := os.ReadDir(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		for _, f := range files {
			if !f.IsDir() && !strings.HasPrefix(f.Name(), tmpPrefix) {
				info.Documents++
			}
		}
	}
	return info, nil
}

func (s *storeImpl) Close() error {
	s.closed.Store(true)
	return nil
}
