package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ValentinKolb/dPaste/lib/store/mstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	s := mstore.NewMemoryStore()
	defer s.Close()

	docs := map[string]string{
		"about":   writeFile(t, dir, "about.md", "# About"),
		"empty":   writeFile(t, dir, "empty.txt", ""),
		"missing": filepath.Join(dir, "does-not-exist.txt"),
	}

	loaded := Preload(s, docs)
	assert.Equal(t, 1, loaded)

	value, ok, err := s.Get("about")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "# About", string(value))

	for _, skipped := range []string{"empty", "missing"} {
		ok, err := s.Has(skipped)
		require.NoError(t, err)
		assert.False(t, ok, "%s should have been skipped", skipped)
	}
}

func TestPreload_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	s := mstore.NewMemoryStore()
	defer s.Close()

	require.NoError(t, s.Set("about", []byte("old")))
	Preload(s, map[string]string{"about": writeFile(t, dir, "about.md", "new")})

	value, _, err := s.Get("about")
	require.NoError(t, err)
	assert.Equal(t, "new", string(value))
}

func TestPreload_ReadableThroughHandler(t *testing.T) {
	dir := t.TempDir()
	s := mstore.NewMemoryStore()
	defer s.Close()
	Preload(s, map[string]string{"about": writeFile(t, dir, "about.md", "# About")})

	h := NewHandler(s, Config{})
	raw, err := h.Read(context.Background(), "about", ModeRaw)
	require.NoError(t, err)
	assert.Equal(t, "# About", string(raw))

	// the extension is a syntax hint for preloaded keys as well
	rendered, err := h.Read(context.Background(), "about.md", ModeRendered)
	require.NoError(t, err)
	assert.Contains(t, string(rendered), `class="language-md"`)
}

func TestWatchPreloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "about.md", "v1")
	docs := map[string]string{"about": path}

	s := mstore.NewMemoryStore()
	defer s.Close()
	require.Equal(t, 1, Preload(s, docs))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- WatchPreloads(ctx, s, docs) }()

	// give the watcher time to register before the write
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))

	require.Eventually(t, func() bool {
		value, _, err := s.Get("about")
		return err == nil && string(value) == "v2"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
