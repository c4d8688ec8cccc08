// Package http implements the transport interfaces over plain HTTP.
//
// The package focuses on:
//   - Server-side routing with Go's pattern based ServeMux
//   - Request metrics (VictoriaMetrics) and debug request logging
//   - Graceful shutdown when the serving context is cancelled
//   - Client-side round-robin load balancing with retries
//
// Key Components:
//
//   - httpServerTransport: implements IServerTransport. Every registered
//     route is wrapped in a metrics middleware recording
//     dpaste_http_request_duration_seconds and dpaste_http_requests_total,
//     and, at debug log level, in a middleware logging method, path, status
//     and duration.
//
//   - httpClientTransport: implements IClientTransport. Endpoints without a
//     scheme are treated as http. Each attempt goes to the next endpoint;
//     only failures without a response are retried.
//
// Thread Safety:
//
//	The client transport is thread-safe and can be used concurrently. It uses
//	atomic operations for the round-robin counter.
package http
