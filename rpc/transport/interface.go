package transport

import (
	"context"
	"net/http"

	"github.com/ValentinKolb/dPaste/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// IServerTransport is the interface for the server side of the transport layer
// It must accept a ServerConfig as a parameter
type IServerTransport interface {
	// RegisterHandler registers a handler for a route pattern (net/http ServeMux syntax)
	// Must be called before Handler or Listen
	RegisterHandler(pattern string, handler http.HandlerFunc)
	// Handler returns the routed handler including all middleware
	Handler(config common.ServerConfig) http.Handler
	// Listen starts the transport layer and serves requests until ctx is done,
	// then shuts down gracefully
	Listen(ctx context.Context, config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IClientTransport is the interface for the client side of the transport layer
type IClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request to one of the endpoints and returns status code and body.
	// A non-nil error means no response was received at all.
	Send(method, path, contentType string, body []byte) (status int, resp []byte, err error)
	// Close closes the transport connection
	Close() error
}
