package common

import (
	"net/http"
	"testing"

	"github.com/ValentinKolb/dPaste/lib/document"
	"github.com/ValentinKolb/dPaste/lib/keygen"
	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() ServerConfig {
	return ServerConfig{
		Endpoint:      "127.0.0.1:7777",
		TimeoutSecond: 10,
		Storage:       store.TypeFile,
		DataPath:      "data",
		MaxLength:     400000,
		KeyLength:     10,
		KeyPrefix:     keygen.DefaultPrefix,
		KeyGenerator:  keygen.KindRandom,
		MaxAttempts:   16,
		LogLevel:      "info",
	}
}

func TestServerConfigValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		modify func(c *ServerConfig)
		want   error
	}{
		{"empty endpoint", func(c *ServerConfig) { c.Endpoint = "" }, ErrEmptyEndpoint},
		{"unknown storage", func(c *ServerConfig) { c.Storage = "s3" }, ErrInvalidStorage},
		{"file without path", func(c *ServerConfig) { c.DataPath = "" }, ErrEmptyDataPath},
		{"bolt without path", func(c *ServerConfig) { c.Storage = store.TypeBolt; c.DataPath = "" }, ErrEmptyDataPath},
		{"zero key length", func(c *ServerConfig) { c.KeyLength = 0 }, ErrInvalidKeyLen},
		{"negative max length", func(c *ServerConfig) { c.MaxLength = -1 }, ErrInvalidMaxLen},
		{"zero attempts", func(c *ServerConfig) { c.MaxAttempts = 0 }, ErrInvalidAttempts},
		{"unknown generator", func(c *ServerConfig) { c.KeyGenerator = "uuid" }, ErrInvalidKeyGen},
		{"bad log level", func(c *ServerConfig) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.modify(&c)
			assert.ErrorIs(t, c.Validate(), tt.want)
		})
	}

	t.Run("memory without path", func(t *testing.T) {
		c := validConfig()
		c.Storage = store.TypeMemory
		c.DataPath = ""
		assert.NoError(t, c.Validate())
	})
}

func TestServerConfigString(t *testing.T) {
	cfg := validConfig()
	cfg.Documents = map[string]string{"about": "about.md"}
	cfg.WatchDocuments = true

	out := cfg.String()
	assert.Contains(t, out, "HTTP SERVER")
	assert.Contains(t, out, "127.0.0.1:7777")
	assert.Contains(t, out, "400000 bytes")
	assert.Contains(t, out, `"rabel-code"`)
	assert.Contains(t, out, "PRELOADED DOCUMENTS")
	assert.Contains(t, out, "about.md")

	cfg.MaxLength = 0
	assert.Contains(t, cfg.String(), "unlimited")
}

func TestClientConfigString(t *testing.T) {
	cfg := ClientConfig{
		Endpoints:     []string{"localhost:7777", "localhost:7778"},
		TimeoutSecond: 5,
		RetryCount:    2,
	}
	out := cfg.String()
	assert.Contains(t, out, "localhost:7778")
	assert.Contains(t, out, "5 sec")
}

func TestStatusMapping(t *testing.T) {
	codes := map[document.ErrCode]int{
		document.ErrCInvalidInput:     http.StatusBadRequest,
		document.ErrCTooLarge:         http.StatusRequestEntityTooLarge,
		document.ErrCNotFound:         http.StatusNotFound,
		document.ErrCStorage:          http.StatusInternalServerError,
		document.ErrCStorageExhausted: http.StatusServiceUnavailable,
	}
	for code, status := range codes {
		assert.Equal(t, status, StatusForCode(code), code.String())
		assert.Equal(t, code, CodeForStatus(status), code.String())
	}
	assert.Equal(t, http.StatusInternalServerError, StatusForCode(document.ErrCUnknown))
}
