package document

import (
	"context"
	"strings"

	"github.com/ValentinKolb/dPaste/lib/keygen"
	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("document")

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

const (
	// DefaultKeyLength is used when Config.KeyLength is not set
	DefaultKeyLength = 10
	// DefaultMaxAttempts is used when Config.MaxAttempts is not set
	DefaultMaxAttempts = 16
	// MaxKeyLength is the largest key length a client may ask for
	MaxKeyLength = 64
)

// Mode selects how a document is returned by Read
type Mode string

const (
	ModeRaw      Mode = "raw"
	ModeRendered Mode = "rendered"
)

// KeyFunc creates a candidate key with the given number of generated characters
type KeyFunc func(length int) string

// Config configures a Handler. Zero values select the defaults.
type Config struct {
	// MaxLength is the maximum document size in bytes (0 = unlimited)
	MaxLength int
	// KeyLength is the number of generated key characters
	KeyLength int
	// MaxAttempts bounds the number of keys tried per write
	MaxAttempts int
	// CreateKey overrides the key generator
	CreateKey KeyFunc
	// Renderer is the display transform for rendered reads
	Renderer IRenderer
}

// --------------------------------------------------------------------------
// Handler
// --------------------------------------------------------------------------

// Handler validates document requests and runs them against a store.
// It holds no mutable state, a single Handler can serve any number of concurrent requests
// as long as the store is safe for concurrent use.
type Handler struct {
	store  store.IStore
	config Config
}

// NewHandler creates a new document handler for the given store
func NewHandler(s store.IStore, config Config) *Handler {
	if config.KeyLength <= 0 {
		config.KeyLength = DefaultKeyLength
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.CreateKey == nil {
		config.CreateKey = keygen.NewRandomGenerator(keygen.DefaultPrefix).CreateKey
	}
	if config.Renderer == nil {
		config.Renderer = NewHTMLRenderer()
	}
	return &Handler{
		store:  s,
		config: config,
	}
}

// Store returns the store the handler operates on
func (h *Handler) Store() store.IStore {
	return h.store
}

// Renderer returns the display transform used for rendered reads
func (h *Handler) Renderer() IRenderer {
	return h.config.Renderer
}

// keyLength returns the client hint if it is in range, the configured length otherwise
func (h *Handler) keyLength(hint int) int {
	if hint >= 1 && hint <= MaxKeyLength {
		return hint
	}
	return h.config.KeyLength
}

// Write stores content under a newly generated key and returns the key.
// keyLength is an optional client hint (0 = use the configured length).
//
// A generated key that is already taken is discarded and a new one is generated,
// at most Config.MaxAttempts keys are tried before ErrStorageExhausted is returned.
// Storage failures are returned as ErrStorage without retrying.
func (h *Handler) Write(ctx context.Context, content []byte, keyLength int) (string, error) {
	if len(content) == 0 {
		countError(ErrCInvalidInput)
		return "", ErrInvalidInput
	}
	if h.config.MaxLength > 0 && len(content) > h.config.MaxLength {
		countError(ErrCTooLarge)
		return "", ErrTooLarge
	}

	length := h.keyLength(keyLength)
	for attempt := 1; attempt <= h.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key := h.config.CreateKey(length)
		stored, err := h.store.SetIfUnset(key, content)
		if err != nil {
			Logger.Errorf("failed to store document: %v", err)
			countError(ErrCStorage)
			return "", newError(ErrStorage, "failed to store document", err)
		}
		if stored {
			documentsWritten.Inc()
			documentSize.Update(float64(len(content)))
			Logger.Debugf("stored document %s (%d bytes, attempt %d)", key, len(content), attempt)
			return key, nil
		}

		keyCollisions.Inc()
		Logger.Debugf("key collision on %s (attempt %d/%d)", key, attempt, h.config.MaxAttempts)
	}

	Logger.Warningf("no free key found after %d attempts (key length %d)", h.config.MaxAttempts, length)
	countError(ErrCStorageExhausted)
	return "", ErrStorageExhausted
}

// Read returns the document stored under id.
// ModeRaw returns the content unmodified, ModeRendered passes it through the renderer.
// If id carries a display extension ("abc.go") and is not stored as is, the key without
// the extension is looked up. A missing document yields ErrNotFound.
func (h *Handler) Read(ctx context.Context, id string, mode Mode) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		countError(ErrCNotFound)
		return nil, ErrNotFound
	}

	key, lang := SplitKey(id)
	content, ok, err := h.store.Get(id)
	if err == nil && !ok && lang != "" && key != "" {
		content, ok, err = h.store.Get(key)
	} else {
		key = id
	}
	if err != nil {
		Logger.Errorf("failed to read document %s: %v", id, err)
		countError(ErrCStorage)
		return nil, newError(ErrStorage, "failed to read document", err)
	}
	if !ok {
		countError(ErrCNotFound)
		return nil, ErrNotFound
	}

	countRead(mode)
	if mode != ModeRendered {
		return content, nil
	}
	return h.config.Renderer.Render(key, lang, content)
}

// SplitKey separates a display extension from a key: "abc.go" -> ("abc", "go").
// Only the part after the first dot is treated as extension.
func SplitKey(id string) (key, ext string) {
	key, ext, _ = strings.Cut(id, ".")
	return key, ext
}
