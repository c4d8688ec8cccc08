// Package mstore implements an in-memory document store based on the
// store.IStore interface. Data is stored entirely in memory and is not persisted
// between process restarts.
//
// Implementation Details:
//
//   - Collision Safety: SetIfUnset is a single xsync.MapOf.LoadOrStore call. The
//     map guarantees that for a given key only one concurrent caller stores its
//     value, every other caller observes the existing entry.
//
//   - Isolation: values are copied on write and on read, so neither the caller
//     nor the map can mutate a stored document afterward.
//
// Thread Safety:
//
//	All operations are safe for concurrent use without additional locking.
//
// Suitable Use Cases:
//
//	- Tests and development environments
//	- Short-lived instances where losing all documents on restart is acceptable
package mstore
