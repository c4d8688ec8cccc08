package server

import (
	"github.com/ValentinKolb/dPaste/rpc/transport"
)

// IRPCServerAdapter is the interface for all server adapters
// An adapter translates HTTP requests into calls of one component and registers
// its routes with the transport
type IRPCServerAdapter interface {
	// Register registers all routes of the adapter with the transport
	// It must be called before the transport starts listening
	Register(t transport.IServerTransport)
}
