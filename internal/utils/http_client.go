package utils

import (
	"github.com/go-resty/resty/v2"
)

// RequestIDHeader carries a unique id on every outbound request so gateway
// logs can be correlated with client logs.
const RequestIDHeader = "X-Request-Id"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance whose
// requests carry a fresh [RequestIDHeader] unless the caller sets one.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	ids := NewUUIDGenerator()

	client := resty.New()
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.SetHeader(RequestIDHeader, ids.Generate())
		}
		return nil
	})

	return &HTTPClient{Client: client}
}
