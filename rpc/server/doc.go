// Package server implements the paste server. It opens the configured
// storage backend, builds the document handler on top of it and exposes the
// handler through a server transport.
//
// The package focuses on:
//   - Selecting and opening the storage backend (memory, file, bolt)
//   - Storing preloaded documents and optionally watching their files
//   - Translating HTTP requests into handler calls and handler errors into
//     status codes
//
// Key Components:
//
//   - IRPCServerAdapter: interface of the adapters, each registers its routes
//     with the transport.
//
//   - NewDocumentServerAdapter: document routes. Writes accept a raw body or the
//     multipart field "data" and read at most maxLength+1 bytes. Reads return
//     a JSON envelope, the raw content, or the rendered page.
//
//   - NewStatusServerAdapter: health check with store information and the
//     metrics endpoint in Prometheus text format.
//
//   - NewRPCServer: creates a server with the given transport and serializer.
//
// Status codes:
//
//	InvalidInput     400
//	TooLarge         413
//	NotFound         404
//	StorageError     500
//	StorageExhausted 503
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Endpoint:      "0.0.0.0:7777",
//	  TimeoutSecond: 10,
//	  Storage:       store.TypeFile,
//	  DataPath:      "data",
//	  MaxLength:     400000,
//	  KeyLength:     10,
//	  KeyPrefix:     keygen.DefaultPrefix,
//	  KeyGenerator:  keygen.KindRandom,
//	  MaxAttempts:   16,
//	  LogLevel:      "info",
//	}
//
//	s := server.NewRPCServer(config, http.NewHttpServerTransport(), serializer.NewJSONSerializer())
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	Requests are handled concurrently, the document handler and all stores
//	are safe for concurrent use. Serve and Handler must be called only once.
package server
