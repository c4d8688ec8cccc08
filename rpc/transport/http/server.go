package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport/http")

// ShutdownTimeout bounds how long in-flight requests may run after Listen's context is done
const ShutdownTimeout = 10 * time.Second

func NewHttpServerTransport() transport.IServerTransport {
	return &httpServerTransport{}
}

type route struct {
	pattern string
	handler http.HandlerFunc
}

type httpServerTransport struct {
	routes []route
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(pattern string, handler http.HandlerFunc) {
	t.routes = append(t.routes, route{pattern: pattern, handler: handler})
}

func (t *httpServerTransport) Handler(config common.ServerConfig) http.Handler {
	mux := http.NewServeMux()

	for _, r := range t.routes {
		h := metricsMiddleware(r.pattern, r.handler)
		if config.LogLevel == "debug" {
			h = loggerMiddleware(h)
		}
		mux.HandleFunc(r.pattern, h)
	}
	return mux
}

func (t *httpServerTransport) Listen(ctx context.Context, config common.ServerConfig) error {
	timeout := time.Duration(config.TimeoutSecond) * time.Second

	srv := &http.Server{
		Addr:              config.Endpoint,
		Handler:           t.Handler(config),
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Infof("Starting HTTP server on %s", config.Endpoint)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	Logger.Infof("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// --------------------------------------------------------------------------
// Middleware
// --------------------------------------------------------------------------

// responseWriter is a custom ResponseWriter that captures status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// loggerMiddleware is a middleware that logs HTTP requests
func loggerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create custom response writer to capture status code
		rw := wrap(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log the request
		duration := time.Since(start)
		Logger.Debugf("%s %s => %d took %s", r.Method, r.URL.Path, rw.statusCode, duration)
	}
}

// metricsMiddleware records request count and latency per route pattern
func metricsMiddleware(pattern string, next http.HandlerFunc) http.HandlerFunc {
	duration := metrics.GetOrCreateHistogram(fmt.Sprintf(`dpaste_http_request_duration_seconds{route=%q}`, pattern))

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrap(w)

		next.ServeHTTP(rw, r)

		duration.UpdateDuration(start)
		metrics.GetOrCreateCounter(fmt.Sprintf(`dpaste_http_requests_total{route=%q,status="%d"}`, pattern, rw.statusCode)).Inc()
	}
}
