package client

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/serializer"
	"github.com/ValentinKolb/dPaste/rpc/transport"
)

// NewPasteClient creates a new paste client
// The function takes a config, a transport and a serializer as parameters
// The transport is connected before the client is returned
func NewPasteClient(
	config common.ClientConfig,
	transport transport.IClientTransport,
	serializer serializer.IRPCSerializer,
) (*PasteClient, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	return &PasteClient{
		rpcClientAdapter{
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}, nil
}

// PasteClient stores and reads documents on a paste server
type PasteClient struct {
	rpcClientAdapter
}

// Put stores content and returns its key.
// keyLength is an optional hint for the number of generated characters (0 = server default).
func (c *PasteClient) Put(content []byte, keyLength int) (string, error) {
	path := common.RouteDocuments
	if keyLength > 0 {
		path += "?" + common.QueryKeyLength + "=" + strconv.Itoa(keyLength)
	}

	var resp common.WriteResponse
	if _, err := c.invokeRequest(http.MethodPost, path, "text/plain; charset=utf-8", content, &resp); err != nil {
		return "", err
	}
	return resp.Key, nil
}

// Get returns the content of a document read through the JSON route
func (c *PasteClient) Get(key string) (string, error) {
	var resp common.DocumentResponse
	if _, err := c.invokeRequest(http.MethodGet, common.RouteDocuments+"/"+url.PathEscape(key), "", nil, &resp); err != nil {
		return "", err
	}
	return resp.Data, nil
}

// GetRaw returns the unmodified bytes of a document
func (c *PasteClient) GetRaw(key string) ([]byte, error) {
	return c.invokeRequest(http.MethodGet, common.RouteRaw+"/"+url.PathEscape(key), "", nil, nil)
}

// Health returns the health report of the server
func (c *PasteClient) Health() (common.HealthResponse, error) {
	var resp common.HealthResponse
	_, err := c.invokeRequest(http.MethodGet, common.RouteHealth, "", nil, &resp)
	return resp, err
}

// Close closes the underlying transport
func (c *PasteClient) Close() error {
	return c.transport.Close()
}
