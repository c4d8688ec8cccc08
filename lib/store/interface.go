package store

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Type names a storage backend
type Type string

const (
	TypeMemory Type = "memory"
	TypeFile   Type = "file"
	TypeBolt   Type = "bolt"
)

// Info describes the backend behind a store.
// It is not guaranteed that all fields are filled in or that the information is up-to-date!
type Info struct {
	Type      Type   `json:"type"`
	Documents int    `json:"documents"`
	Path      string `json:"path,omitempty"`
}

// IStore is the interface for persisting documents under a key.
// Write operations return a *Error on failure, read operations return the requested
// data along with a *Error (nil on success).
// All implementations must be safe for concurrent use.
type IStore interface {
	// SetIfUnset stores the value only if the key does not exist yet.
	// The check and the write are atomic: of several concurrent calls for the same key
	// exactly one returns stored=true. An existing key yields stored=false and a nil error.
	SetIfUnset(key string, value []byte) (stored bool, err error)
	// Set inserts or overwrites a key–value pair.
	Set(key string, value []byte) (err error)
	// Get returns a copy of the value for a key. The boolean return value indicates whether a value for the key was found.
	Get(key string) (value []byte, loaded bool, err error)
	// Has returns whether a key exists in the store.
	Has(key string) (loaded bool, err error)
	// GetInfo returns metadata about the backend.
	GetInfo() (info Info, err error)
	// Close releases the resources held by the store. The store must not be used afterward.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and the underlying cause (if any).
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
	Err  error   // The cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("StoreError (code %s): %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// Unwrap returns the cause of the error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new StoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// WrapError creates a new StoreError with the given code and message wrapping err.
func WrapError(code RetCode, msg string, err error) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// ValidateKey rejects keys no backend can address.
func ValidateKey(key string) error {
	if key == "" {
		return NewError(RetCInvalidKey, "key must not be empty")
	}
	return nil
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Command executed successfully.
	RetCInternalError                // 1: Command failed due to an internal error.
	RetCInvalidKey                   // 2: The key cannot be stored by the backend.
	RetCIOError                      // 3: The backing medium failed.
	RetCClosed                       // 4: The store was already closed.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidKey:
		return "InvalidKey"
	case RetCIOError:
		return "IOError"
	case RetCClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}
