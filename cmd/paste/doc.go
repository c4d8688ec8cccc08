// Package paste implements the "doc" command group, a command line client
// for dPaste servers.
//
// Commands:
//
//   - put: stores a document (argument, --file, or stdin) and prints its key
//   - get: reads a document through the JSON api
//   - raw: writes the unmodified document to stdout
//   - health: prints the health report of the server
//   - perf: runs concurrent put/get/raw/miss benchmarks and reports latency
//     percentiles recorded with go-metrics timers, optionally as CSV
package paste
