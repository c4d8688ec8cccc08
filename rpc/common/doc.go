// Package common provides the data structures shared by the paste server,
// its HTTP adapter and the client.
//
// The package focuses on:
//   - Configuration structures for client and server components
//   - The JSON wire types and routes of the HTTP api
//   - Logging integrated with the Dragonboat logger facade
//
// Key Components:
//
//   - ServerConfig: all settings of a paste server (endpoint, storage backend,
//     document limits, key generation, preloaded documents). Validate rejects
//     bad values before the server is built, String renders the startup banner.
//
//   - ClientConfig: connection parameters, timeouts and retry behavior for
//     clients.
//
//   - WriteResponse, DocumentResponse, ErrorResponse, HealthResponse: the JSON
//     bodies exchanged over HTTP. StatusForCode and CodeForStatus translate
//     between document error codes and HTTP status codes in both directions.
//
//   - Logger: package loggers are obtained with logger.GetLogger(name) from
//     dragonboat; InitLoggers installs a factory writing through zap and sets
//     the level of every package logger.
package common
