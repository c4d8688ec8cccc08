package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, r.Method+" "+r.URL.RequestURI()+" "+r.Header.Get("Content-Type")+" "+string(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSend(t *testing.T) {
	srv := echoServer(t)

	tr := NewHttpClientTransport()
	require.NoError(t, tr.Connect(common.ClientConfig{Endpoints: []string{srv.URL + "/"}, TimeoutSecond: 5, RetryCount: 1}))
	defer tr.Close()

	status, body, err := tr.Send(http.MethodPost, "/documents?keyLength=4", "text/plain", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "POST /documents?keyLength=4 text/plain hello", string(body))
}

func TestClientEndpointWithoutScheme(t *testing.T) {
	srv := echoServer(t)

	tr := NewHttpClientTransport()
	require.NoError(t, tr.Connect(common.ClientConfig{Endpoints: []string{strings.TrimPrefix(srv.URL, "http://")}, TimeoutSecond: 5}))
	defer tr.Close()

	status, _, err := tr.Send(http.MethodGet, "/x", "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
}

func TestClientRetriesNextEndpoint(t *testing.T) {
	srv := echoServer(t)
	dead := "http://127.0.0.1:1"

	// the first request goes to index 1
	tr := NewHttpClientTransport()
	require.NoError(t, tr.Connect(common.ClientConfig{Endpoints: []string{srv.URL, dead}, TimeoutSecond: 5, RetryCount: 2}))
	defer tr.Close()

	status, _, err := tr.Send(http.MethodGet, "/x", "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)

	single := NewHttpClientTransport()
	require.NoError(t, single.Connect(common.ClientConfig{Endpoints: []string{dead}, TimeoutSecond: 5, RetryCount: 3}))
	defer single.Close()

	_, _, err = single.Send(http.MethodGet, "/x", "", nil)
	assert.Error(t, err)
}

func TestClientNotConnected(t *testing.T) {
	tr := NewHttpClientTransport()
	_, _, err := tr.Send(http.MethodGet, "/", "", nil)
	assert.Error(t, err)

	assert.Error(t, tr.Connect(common.ClientConfig{}))
}
