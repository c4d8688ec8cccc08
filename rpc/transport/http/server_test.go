package http

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/VictoriaMetrics/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, logLevel string) *httptest.Server {
	t.Helper()
	tr := NewHttpServerTransport()
	tr.RegisterHandler("GET /echo/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.PathValue("id"))
	})
	tr.RegisterHandler("POST /teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := httptest.NewServer(tr.Handler(common.ServerConfig{LogLevel: logLevel}))
	t.Cleanup(srv.Close)
	return srv
}

func TestServerRouting(t *testing.T) {
	for _, level := range []string{"info", "debug"} {
		t.Run(level, func(t *testing.T) {
			srv := newTestServer(t, level)

			resp, err := http.Get(srv.URL + "/echo/abc")
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "abc", string(body))

			resp, err = http.Post(srv.URL+"/teapot", "text/plain", nil)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusTeapot, resp.StatusCode)

			// wrong method
			resp, err = http.Get(srv.URL + "/teapot")
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		})
	}
}

func TestServerMetrics(t *testing.T) {
	srv := newTestServer(t, "info")

	resp, err := http.Post(srv.URL+"/teapot", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	var buf bytes.Buffer
	metrics.WritePrometheus(&buf, false)
	assert.Contains(t, buf.String(), `dpaste_http_requests_total{route="POST /teapot",status="418"}`)
	assert.Contains(t, buf.String(), `dpaste_http_request_duration_seconds_bucket{route="POST /teapot"`)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServerListenShutdown(t *testing.T) {
	addr := freeAddr(t)
	tr := NewHttpServerTransport()
	tr.RegisterHandler("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- tr.Listen(ctx, common.ServerConfig{Endpoint: addr, TimeoutSecond: 5, LogLevel: "info"})
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Listen did not return after cancel")
	}
}

func TestServerListenAddressInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	tr := NewHttpServerTransport()
	err = tr.Listen(context.Background(), common.ServerConfig{Endpoint: l.Addr().String()})
	assert.Error(t, err)
}
