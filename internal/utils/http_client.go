package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
// Every request carries the trace id of its context in [TraceIDHeader].
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://ledger:8080", 10*time.Second)
//	resp, err := client.R().SetContext(ctx).Get("/api/version/")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient for baseURL. A zero timeout leaves the
// resty default (none) in place.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().SetBaseURL(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if traceID, ok := GetTraceIDFromContext(req.Context()); ok {
			req.SetHeader(TraceIDHeader, traceID)
		}
		return nil
	})

	return &HTTPClient{Client: client}
}
