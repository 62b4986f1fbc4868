package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/trigg3rX/sybil-verifier/pkg/logging"
)

// HTTPConfig holds configuration for outbound HTTP calls
type HTTPConfig struct {
	Timeout         time.Duration
	IdleConnTimeout time.Duration
	MaxResponseSize int64 // Maximum response size to read for error messages
}

// DefaultHTTPConfig returns default configuration for outbound HTTP calls
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Timeout:         10 * time.Second,
		IdleConnTimeout: 30 * time.Second,
		MaxResponseSize: 4096,
	}
}

// Validate checks the HTTP configuration for reasonable values
func (c *HTTPConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.IdleConnTimeout <= 0 {
		return fmt.Errorf("idleConnTimeout must be positive")
	}
	if c.MaxResponseSize < 0 {
		return fmt.Errorf("maxResponseSize must be >= 0")
	}
	return nil
}

// HTTPError represents an HTTP-specific error with status code
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// HTTPClient wraps http.Client with tuned transport timeouts. Requests are
// issued exactly once.
type HTTPClient struct {
	client     *http.Client
	HTTPConfig *HTTPConfig
	logger     logging.Logger
}

// NewHTTPClient creates a new HTTP client
func NewHTTPClient(httpConfig *HTTPConfig, logger logging.Logger) (*HTTPClient, error) {
	if httpConfig == nil {
		httpConfig = DefaultHTTPConfig()
	}

	if err := httpConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid HTTP config: %w", err)
	}

	client := &http.Client{
		Timeout: httpConfig.Timeout,
		Transport: &http.Transport{
			IdleConnTimeout:   httpConfig.IdleConnTimeout,
			DisableKeepAlives: false,
			DialContext: (&net.Dialer{
				Timeout:   httpConfig.Timeout / 2,
				KeepAlive: httpConfig.IdleConnTimeout,
			}).DialContext,
			TLSHandshakeTimeout:   httpConfig.Timeout / 2,
			ResponseHeaderTimeout: httpConfig.Timeout / 2,
			ExpectContinueTimeout: httpConfig.Timeout / 3,
		},
	}

	return &HTTPClient{
		client:     client,
		HTTPConfig: httpConfig,
		logger:     logger,
	}, nil
}

// Do sends req bound to ctx. The caller is responsible for closing the
// response body.
func (c *HTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		c.logger.Debugf("HTTP %s %s failed: %v", req.Method, req.URL.Redacted(), err)
		return nil, err
	}
	return resp, nil
}

// ErrorFromResponse drains and closes resp, returning an HTTPError carrying
// a truncated copy of the body.
func (c *HTTPClient) ErrorFromResponse(resp *http.Response) *HTTPError {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, c.HTTPConfig.MaxResponseSize))
	if err := resp.Body.Close(); err != nil {
		c.logger.Warnf("Failed to close response body: %v", err)
	}
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("unexpected status, body: %q", truncate(string(bodyBytes), 200)),
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Close closes idle connections
func (c *HTTPClient) Close() {
	c.client.CloseIdleConnections()
}

// GetClient returns the underlying http.Client for libraries that build their
// own requests, such as the OAuth1 signed Twitter client.
func (c *HTTPClient) GetClient() *http.Client {
	return c.client
}
