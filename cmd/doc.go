// Package cmd implements the command-line interface of dPaste. It provides a
// hierarchical command structure for running the server and for talking to it
// as a client.
//
// The package is organized into several subpackages:
//
//   - serve: starts and configures the dPaste server
//   - paste: document commands (put, get, raw, health, perf)
//   - util: shared utilities for command-line processing and configuration (internal use)
//
// See dpaste -help for a list of all commands.
package cmd
