package document

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/fsnotify/fsnotify"
	"github.com/lni/dragonboat/v4/logger"
)

var preloadLogger = logger.GetLogger("preload")

// Preload reads every file in docs (key -> file path) and stores it under its key,
// bypassing key generation. Existing documents with the same key are replaced.
// Unreadable or empty files are logged and skipped, they never abort the preload.
// It returns the number of documents stored.
func Preload(s store.IStore, docs map[string]string) int {
	// sorted for a stable log output
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := 0
	for _, name := range names {
		if preloadOne(s, name, docs[name]) {
			loaded++
		}
	}
	return loaded
}

func preloadOne(s store.IStore, name, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		preloadLogger.Warningf("document not found: %s ==> %s (%v)", name, path, err)
		return false
	}
	if len(data) == 0 {
		preloadLogger.Warningf("document is empty: %s ==> %s", name, path)
		return false
	}
	if err := s.Set(name, data); err != nil {
		preloadLogger.Warningf("failed to store document: %s ==> %s (%v)", name, path, err)
		return false
	}
	documentsLoaded.Inc()
	preloadLogger.Infof("loaded document: %s ==> %s", name, path)
	return true
}

// WatchPreloads reloads a preloaded document whenever its file is written.
// It blocks until ctx is cancelled. Directories are watched instead of the files
// themselves, so editors that replace files on save are handled as well.
func WatchPreloads(ctx context.Context, s store.IStore, docs map[string]string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	// absolute file path -> keys loaded from it
	byPath := make(map[string][]string)
	for name, path := range docs {
		abs, err := filepath.Abs(path)
		if err != nil {
			preloadLogger.Warningf("cannot watch %s ==> %s (%v)", name, path, err)
			continue
		}
		if _, ok := byPath[abs]; !ok {
			if err := w.Add(filepath.Dir(abs)); err != nil {
				preloadLogger.Warningf("cannot watch %s ==> %s (%v)", name, path, err)
				continue
			}
		}
		byPath[abs] = append(byPath[abs], name)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			for _, name := range byPath[abs] {
				preloadOne(s, name, abs)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			preloadLogger.Warningf("error watching documents: %v", err)
		}
	}
}
