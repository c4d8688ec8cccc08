// Package store provides the storage abstraction for documents: a key-value
// interface with an atomic create-if-absent write, a total lookup and unified
// error handling.
//
// The package focuses on:
//   - A unified interface (IStore) for document persistence across different backends
//   - Collision safety: SetIfUnset never overwrites and is atomic per key
//
// Key Components:
//
//   - IStore Interface: The core abstraction. Callers detect key collisions through
//     the stored flag of SetIfUnset and medium failures through the returned error.
//     Set (overwrite) exists for administrative inserts such as preloaded documents.
//
//   - Error System: A structured error reporting mechanism using typed return codes
//     (RetCode), a message and the wrapped cause. errors.As can be used to inspect
//     the code, errors.Is/Unwrap reach the cause.
//
// Implementations:
//
//   - Memory Store (mstore): lock-free concurrent map, nothing survives a restart.
//     Available in the "github.com/ValentinKolb/dPaste/lib/store/mstore" package.
//
//   - File Store (fstore): one file per document below a data directory. Creation
//     relies on hard links, which the operating system creates atomically.
//     Available in the "github.com/ValentinKolb/dPaste/lib/store/fstore" package.
//
//   - Bolt Store (bstore): a single bbolt database file; the existence check and
//     the write share one transaction.
//     Available in the "github.com/ValentinKolb/dPaste/lib/store/bstore" package.
//
// Every implementation is verified by the shared suite in lib/store/testing.
package store
