// Package client implements a typed client for the paste server on top of a
// client transport.
//
// Key Components:
//
//   - NewPasteClient: connects the transport and returns a PasteClient with
//     Put, Get, GetRaw and Health.
//
//   - Error conversion: responses with a status other than 200 are turned back
//     into *document.Error values by status code, so errors.Is(err,
//     document.ErrNotFound) works on both sides of the wire. Failures without
//     a response are returned unchanged.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Endpoints:     []string{"localhost:7777"},
//	  TimeoutSecond: 5,
//	  RetryCount:    3,
//	}
//
//	c, err := client.NewPasteClient(config, http.NewHttpClientTransport(), serializer.NewJSONSerializer())
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer c.Close()
//
//	key, _ := c.Put([]byte("hello"), 0)
//	content, _ := c.GetRaw(key)
//
// Thread Safety:
//
//	The client is safe for concurrent use when its transport is.
package client
