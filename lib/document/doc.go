// Package document implements the paste protocol between requests and storage:
// validating new documents, finding a free key for them and reading them back
// either raw or rendered.
//
// Write path:
//
//	content -> empty? ErrInvalidInput -> longer than MaxLength? ErrTooLarge
//	        -> loop: CreateKey -> store.SetIfUnset
//	             stored      -> return key
//	             collision   -> next attempt (at most MaxAttempts, then ErrStorageExhausted)
//	             store error -> ErrStorage (no retry)
//
// Read path:
//
//	key -> store.Get -> absent? ErrNotFound -> ModeRaw: content / ModeRendered: Renderer(content)
//
// All failures are *Error values carrying an ErrCode. Use errors.Is with the
// sentinels (ErrNotFound, ...) or CodeOf to branch on them.
//
// Preload stores documents from files under fixed keys at startup, WatchPreloads
// keeps them up to date while the server runs.
package document
