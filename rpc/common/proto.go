package common

import (
	"net/http"

	"github.com/ValentinKolb/dPaste/lib/document"
	"github.com/ValentinKolb/dPaste/lib/store"
)

// --------------------------------------------------------------------------
// Routes
// --------------------------------------------------------------------------

const (
	// RouteDocuments accepts new documents (POST) and prefixes JSON reads (GET RouteDocuments/{id})
	RouteDocuments = "/documents"
	// RouteRaw prefixes raw reads (GET RouteRaw/{id})
	RouteRaw = "/raw"
	// RouteMetrics exposes the server metrics in Prometheus text format
	RouteMetrics = "/metrics"
	// RouteHealth reports liveness and store information
	RouteHealth = "/health"

	// QueryKeyLength is the query parameter carrying the client's key length hint
	QueryKeyLength = "keyLength"
	// FormFieldData is the multipart form field accepted in place of a raw body
	FormFieldData = "data"
)

// --------------------------------------------------------------------------
// Message Structures
// --------------------------------------------------------------------------

// WriteResponse is returned for a stored document
type WriteResponse struct {
	Key string `json:"key"`
}

// DocumentResponse is returned for a JSON read
type DocumentResponse struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is returned by the health route
type HealthResponse struct {
	Status string     `json:"status"`
	Store  store.Info `json:"store"`
}

// --------------------------------------------------------------------------
// Status Mapping
// --------------------------------------------------------------------------

// StatusForCode maps a document error code to the HTTP status sent to clients
func StatusForCode(code document.ErrCode) int {
	switch code {
	case document.ErrCInvalidInput:
		return http.StatusBadRequest
	case document.ErrCTooLarge:
		return http.StatusRequestEntityTooLarge
	case document.ErrCNotFound:
		return http.StatusNotFound
	case document.ErrCStorageExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeForStatus is the inverse of StatusForCode, used by clients
func CodeForStatus(status int) document.ErrCode {
	switch status {
	case http.StatusBadRequest:
		return document.ErrCInvalidInput
	case http.StatusRequestEntityTooLarge:
		return document.ErrCTooLarge
	case http.StatusNotFound:
		return document.ErrCNotFound
	case http.StatusServiceUnavailable:
		return document.ErrCStorageExhausted
	default:
		return document.ErrCStorage
	}
}
