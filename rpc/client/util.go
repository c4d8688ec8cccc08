package client

import (
	"fmt"
	"net/http"

	"github.com/ValentinKolb/dPaste/lib/document"
	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/serializer"
	"github.com/ValentinKolb/dPaste/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// rpcClientAdapter is a struct that stores all data needed for an implementation of a client
// Used by the PasteClient with composition pattern
type rpcClientAdapter struct {
	config     common.ClientConfig
	transport  transport.IClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRequest is a helper function used by all clients to send requests
// A response with a status other than 200 is converted into a *document.Error,
// errors without a response (network, timeouts) are returned as they are.
// If out is not nil the response body is deserialized into it.
func (a *rpcClientAdapter) invokeRequest(method, path, contentType string, body []byte, out any) ([]byte, error) {
	status, resp, err := a.transport.Send(method, path, contentType, body)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, a.decodeError(status, resp)
	}

	if out != nil {
		if err := a.serializer.Deserialize(resp, out); err != nil {
			return nil, fmt.Errorf("client: failed to decode response: %w", err)
		}
	}
	return resp, nil
}

// decodeError rebuilds the document error of a failed request from its status code
func (a *rpcClientAdapter) decodeError(status int, resp []byte) error {
	var e common.ErrorResponse
	if err := a.serializer.Deserialize(resp, &e); err != nil || e.Message == "" {
		e.Message = http.StatusText(status)
	}
	Logger.Debugf("request failed with status %d: %s", status, e.Message)
	return document.ErrorFromCode(common.CodeForStatus(status), e.Message)
}
