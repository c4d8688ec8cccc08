// Package transport defines the interfaces between the paste api and the
// network. The server side routes requests to handlers, the client side sends
// requests to a set of endpoints and returns the raw response.
//
// Key Components:
//
//   - IServerTransport: registers route handlers, builds the routed handler
//     and serves it until its context is cancelled.
//
//   - IClientTransport: manages connections to server endpoints and sends
//     requests, returning status code and body.
package transport
