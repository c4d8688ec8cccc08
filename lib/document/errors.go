package document

import (
	"errors"
	"fmt"
)

// ErrCode discriminates the outcomes a caller has to render differently
type ErrCode uint8

const (
	ErrCUnknown          ErrCode = iota // 0: Not a document error.
	ErrCInvalidInput                    // 1: The document is empty or missing.
	ErrCTooLarge                        // 2: The document exceeds the configured maximum length.
	ErrCNotFound                        // 3: No document is stored under the key.
	ErrCStorage                         // 4: The storage backend failed.
	ErrCStorageExhausted                // 5: No free key was found within the retry budget.
)

func (c ErrCode) String() string {
	switch c {
	case ErrCInvalidInput:
		return "InvalidInput"
	case ErrCTooLarge:
		return "TooLarge"
	case ErrCNotFound:
		return "NotFound"
	case ErrCStorage:
		return "StorageError"
	case ErrCStorageExhausted:
		return "StorageExhausted"
	default:
		return "Unknown"
	}
}

// Error is returned by every Handler operation that fails for a domain reason.
// Two errors are considered equal by errors.Is when their codes match,
// so the sentinel values below can be used as targets.
type Error struct {
	Code ErrCode
	Msg  string
	Err  error
}

var (
	ErrInvalidInput     = &Error{Code: ErrCInvalidInput, Msg: "document is empty"}
	ErrTooLarge         = &Error{Code: ErrCTooLarge, Msg: "document exceeds maximum length"}
	ErrNotFound         = &Error{Code: ErrCNotFound, Msg: "document not found"}
	ErrStorage          = &Error{Code: ErrCStorage, Msg: "storage failure"}
	ErrStorageExhausted = &Error{Code: ErrCStorageExhausted, Msg: "no free key found"}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// newError derives an error from a sentinel with a more specific message and cause
func newError(sentinel *Error, msg string, cause error) *Error {
	if msg == "" {
		msg = sentinel.Msg
	}
	return &Error{Code: sentinel.Code, Msg: msg, Err: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or ErrCUnknown
func CodeOf(err error) ErrCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCUnknown
}

// ErrorFromCode returns the sentinel for a code, used by clients to rebuild errors received over the wire
func ErrorFromCode(code ErrCode, msg string) *Error {
	var sentinel *Error
	switch code {
	case ErrCInvalidInput:
		sentinel = ErrInvalidInput
	case ErrCTooLarge:
		sentinel = ErrTooLarge
	case ErrCNotFound:
		sentinel = ErrNotFound
	case ErrCStorageExhausted:
		sentinel = ErrStorageExhausted
	default:
		sentinel = ErrStorage
	}
	return newError(sentinel, msg, nil)
}
