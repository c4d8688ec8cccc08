package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/transport"
)

func NewHttpClientTransport() transport.IClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	serverURLs []*url.URL
	client     *http.Client
	counter    uint32
	retryCount int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (transport *httpClientTransport) Connect(config common.ClientConfig) error {
	if len(config.Endpoints) == 0 {
		return fmt.Errorf("http transport: no endpoints configured")
	}

	// Parse each server URL
	parsedURLs := make([]*url.URL, len(config.Endpoints))
	for i, server := range config.Endpoints {
		if !strings.Contains(server, "://") {
			server = "http://" + server
		}
		parsedURL, err := url.Parse(strings.TrimRight(server, "/"))
		if err != nil {
			return err
		}
		parsedURLs[i] = parsedURL
	}

	conns := config.ConnectionsPerEndpoint
	if conns <= 0 {
		conns = 10
	}

	// Create client with default transport
	client := &http.Client{
		Timeout: time.Duration(config.TimeoutSecond) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        conns * len(parsedURLs),
			MaxIdleConnsPerHost: conns,
			IdleConnTimeout:     time.Duration(config.TimeoutSecond) * time.Second,
		},
	}

	// Set the client and server URLs
	transport.client = client
	transport.serverURLs = parsedURLs
	transport.counter = 0
	transport.retryCount = config.RetryCount

	// No error
	return nil
}

func (transport *httpClientTransport) Send(method, path, contentType string, body []byte) (int, []byte, error) {
	// Check if the transport is initialized
	if transport.client == nil {
		return 0, nil, fmt.Errorf("http transport not initialized")
	}

	attempts := max(1, transport.retryCount)

	// Send the request (with retries), every attempt goes to the next server
	var lastErr error
	for i := 0; i < attempts; i++ {
		idx := atomic.AddUint32(&transport.counter, 1) % uint32(len(transport.serverURLs))
		requestURL := transport.serverURLs[idx].String() + path

		status, resp, err := transport.do(method, requestURL, contentType, body)
		if err == nil {
			return status, resp, nil
		}
		lastErr = err
		Logger.Debugf("Request %s %s failed (attempt %d/%d): %v", method, requestURL, i+1, attempts, err)
	}
	return 0, nil, lastErr
}

func (transport *httpClientTransport) Close() error {
	// Close the client
	if transport.client != nil {
		transport.client.CloseIdleConnections()
	}

	// Reset the client and server URLs
	transport.client = nil
	transport.serverURLs = nil

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (transport *httpClientTransport) do(method, requestURL, contentType string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpRequest, err := http.NewRequest(method, requestURL, reader)
	if err != nil {
		return 0, nil, err
	}
	if contentType != "" {
		httpRequest.Header.Set("Content-Type", contentType)
	}

	httpResponse, err := transport.client.Do(httpRequest)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	resp, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return 0, nil, err
	}
	return httpResponse.StatusCode, resp, nil
}
