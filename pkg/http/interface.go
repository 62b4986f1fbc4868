package http

import (
	"context"
	"net/http"
)

// HTTPClientInterface defines the interface for HTTP operations
type HTTPClientInterface interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
	ErrorFromResponse(resp *http.Response) *HTTPError
	GetClient() *http.Client
	Close()
}
