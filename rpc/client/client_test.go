package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ValentinKolb/dPaste/lib/document"
	"github.com/ValentinKolb/dPaste/lib/keygen"
	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/serializer"
	"github.com/ValentinKolb/dPaste/rpc/server"
	httpTransport "github.com/ValentinKolb/dPaste/rpc/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *PasteClient {
	t.Helper()
	s := server.NewRPCServer(common.ServerConfig{
		Endpoint:     "127.0.0.1:0",
		Storage:      store.TypeMemory,
		MaxLength:    32,
		KeyLength:    6,
		KeyPrefix:    "t-",
		KeyGenerator: keygen.KindPhonetic,
		MaxAttempts:  8,
		LogLevel:     "error",
	}, httpTransport.NewHttpServerTransport(), serializer.NewJSONSerializer())
	h, err := s.Handler()
	require.NoError(t, err)
	srv := httptest.NewServer(h)

	c, err := NewPasteClient(common.ClientConfig{
		Endpoints:     []string{srv.URL},
		TimeoutSecond: 5,
		RetryCount:    1,
	}, httpTransport.NewHttpClientTransport(), serializer.NewJSONSerializer())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		srv.Close()
		_ = s.Close()
	})
	return c
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestClient(t)

	key, err := c.Put([]byte("hello <world>"), 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "t-"))
	assert.Len(t, key, len("t-")+6)

	data, err := c.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "hello <world>", data)

	raw, err := c.GetRaw(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello <world>"), raw)

	key, err = c.Put([]byte("short key"), 3)
	require.NoError(t, err)
	assert.Len(t, key, len("t-")+3)

	health, err := c.Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.Store.Documents)
}

func TestClientErrors(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Put(nil, 0)
	assert.ErrorIs(t, err, document.ErrInvalidInput)

	_, err = c.Put([]byte(strings.Repeat("x", 33)), 0)
	assert.ErrorIs(t, err, document.ErrTooLarge)
	assert.Equal(t, document.ErrCTooLarge, document.CodeOf(err))

	_, err = c.Get("t-missing")
	assert.ErrorIs(t, err, document.ErrNotFound)

	_, err = c.GetRaw("t-missing")
	assert.ErrorIs(t, err, document.ErrNotFound)
	assert.Equal(t, document.ErrNotFound.Msg, err.Error())
}

func TestClientStatusMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/raw/busy":
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"message":"no free key found"}`))
		case "/raw/broken":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>proxy error</html>"))
		default:
			_, _ = w.Write([]byte("not json"))
		}
	}))
	defer srv.Close()

	c, err := NewPasteClient(common.ClientConfig{Endpoints: []string{srv.URL}, TimeoutSecond: 5}, httpTransport.NewHttpClientTransport(), serializer.NewJSONSerializer())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.GetRaw("busy")
	assert.ErrorIs(t, err, document.ErrStorageExhausted)
	assert.Equal(t, "no free key found", err.Error())

	// a body that is not an error response still yields a coded error
	_, err = c.GetRaw("broken")
	assert.ErrorIs(t, err, document.ErrStorage)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), err.Error())

	_, err = c.Get("anything")
	require.Error(t, err)
	var docErr *document.Error
	assert.False(t, errors.As(err, &docErr))
}

func TestClientConnectError(t *testing.T) {
	_, err := NewPasteClient(common.ClientConfig{}, httpTransport.NewHttpClientTransport(), serializer.NewJSONSerializer())
	assert.Error(t, err)
}
