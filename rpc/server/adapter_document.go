package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/ValentinKolb/dPaste/lib/document"
	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/serializer"
	"github.com/ValentinKolb/dPaste/rpc/transport"
)

// NewDocumentServerAdapter creates the adapter serving the document routes.
// maxLength is the configured document limit (0 = unlimited), request bodies
// are never read beyond maxLength+1 bytes.
func NewDocumentServerAdapter(handler *document.Handler, serializer serializer.IRPCSerializer, maxLength int) IRPCServerAdapter {
	return &documentServerAdapter{
		handler:    handler,
		serializer: serializer,
		maxLength:  maxLength,
	}
}

type documentServerAdapter struct {
	handler    *document.Handler
	serializer serializer.IRPCSerializer
	maxLength  int
}

func (adapter *documentServerAdapter) Register(t transport.IServerTransport) {
	t.RegisterHandler("POST "+common.RouteDocuments, adapter.handleWrite)
	t.RegisterHandler("GET "+common.RouteDocuments+"/{id}", adapter.handleReadJSON)
	t.RegisterHandler("GET "+common.RouteRaw+"/{id}", adapter.handleReadRaw)
	t.RegisterHandler("GET /{id}", adapter.handleReadRendered)
}

// --------------------------------------------------------------------------
// Handlers
// --------------------------------------------------------------------------

func (adapter *documentServerAdapter) handleWrite(w http.ResponseWriter, r *http.Request) {
	content, err := adapter.readContent(r)
	if err != nil {
		writeError(w, adapter.serializer, err)
		return
	}

	// An invalid hint is ignored, the handler falls back to the configured length
	keyLength, _ := strconv.Atoi(r.URL.Query().Get(common.QueryKeyLength))

	key, err := adapter.handler.Write(r.Context(), content, keyLength)
	if err != nil {
		writeError(w, adapter.serializer, err)
		return
	}
	writeBody(w, adapter.serializer, http.StatusOK, common.WriteResponse{Key: key})
}

func (adapter *documentServerAdapter) handleReadJSON(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	content, err := adapter.handler.Read(r.Context(), id, document.ModeRaw)
	if err != nil {
		writeError(w, adapter.serializer, err)
		return
	}
	writeBody(w, adapter.serializer, http.StatusOK, common.DocumentResponse{Key: id, Data: string(content)})
}

func (adapter *documentServerAdapter) handleReadRaw(w http.ResponseWriter, r *http.Request) {
	content, err := adapter.handler.Read(r.Context(), r.PathValue("id"), document.ModeRaw)
	if err != nil {
		writeError(w, adapter.serializer, err)
		return
	}
	writeRaw(w, http.StatusOK, "text/plain; charset=utf-8", content)
}

func (adapter *documentServerAdapter) handleReadRendered(w http.ResponseWriter, r *http.Request) {
	content, err := adapter.handler.Read(r.Context(), r.PathValue("id"), document.ModeRendered)
	if err != nil {
		writeError(w, adapter.serializer, err)
		return
	}
	writeRaw(w, http.StatusOK, adapter.handler.Renderer().ContentType(), content)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// errBadBody is returned when the request body cannot be read or parsed
var errBadBody = errors.New("failed to read request body")

// readContent returns the document of a write request, either the raw body
// or the multipart form field "data"
func (adapter *documentServerAdapter) readContent(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return adapter.readLimited(r.Body)
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadBody, err)
	}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			// no data field, the handler rejects the empty document
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadBody, err)
		}
		if part.FormName() == common.FormFieldData {
			return adapter.readPart(part)
		}
		_ = part.Close()
	}
}

func (adapter *documentServerAdapter) readPart(part *multipart.Part) ([]byte, error) {
	defer part.Close()
	return adapter.readLimited(part)
}

// readLimited reads at most maxLength+1 bytes, enough for the handler to detect an oversize document
func (adapter *documentServerAdapter) readLimited(r io.Reader) ([]byte, error) {
	if adapter.maxLength > 0 {
		r = io.LimitReader(r, int64(adapter.maxLength)+1)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadBody, err)
	}
	return buf.Bytes(), nil
}

// writeError maps err to a status code and writes an ErrorResponse.
// Only document errors reach the client with their message, everything else is
// reported as an internal error.
func writeError(w http.ResponseWriter, s serializer.IRPCSerializer, err error) {
	code := document.CodeOf(err)
	status := common.StatusForCode(code)
	resp := common.ErrorResponse{Message: "internal server error"}

	switch {
	case errors.Is(err, errBadBody):
		status = http.StatusBadRequest
		resp.Message = errBadBody.Error()
		resp.Code = document.ErrCInvalidInput.String()
	case code == document.ErrCStorage:
		// do not leak backend details, the cause is logged by the handler
		resp.Message = document.ErrStorage.Msg
		resp.Code = code.String()
	case code != document.ErrCUnknown:
		resp.Message = err.Error()
		resp.Code = code.String()
	default:
		Logger.Errorf("request failed: %v", err)
	}

	writeBody(w, s, status, resp)
}

func writeBody(w http.ResponseWriter, s serializer.IRPCSerializer, status int, body any) {
	b, err := s.Serialize(body)
	if err != nil {
		Logger.Errorf("failed to serialize response: %v", err)
		http.Error(w, "failed to serialize response", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, s.ContentType(), b)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		Logger.Warningf("failed to write response: %v", err)
	}
}
