package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockHTTPClient is a mock implementation of the HTTPClientInterface
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) ErrorFromResponse(resp *http.Response) *HTTPError {
	args := m.Called(resp)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*HTTPError)
}

func (m *MockHTTPClient) Close() {
	m.Called()
}

func (m *MockHTTPClient) GetClient() *http.Client {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*http.Client)
}

// MockResponseBuilder builds canned responses for tests
type MockResponseBuilder struct {
	statusCode int
	body       string
	headers    map[string]string
}

// NewMockResponseBuilder creates a new mock response builder
func NewMockResponseBuilder() *MockResponseBuilder {
	return &MockResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *MockResponseBuilder) WithStatusCode(statusCode int) *MockResponseBuilder {
	b.statusCode = statusCode
	return b
}

func (b *MockResponseBuilder) WithBody(body string) *MockResponseBuilder {
	b.body = body
	return b
}

func (b *MockResponseBuilder) WithHeader(key, value string) *MockResponseBuilder {
	b.headers[key] = value
	return b
}

// Build creates the final mock response
func (b *MockResponseBuilder) Build() *http.Response {
	body := b.body
	if body == "" {
		body = "{}"
	}

	headers := make(http.Header)
	for key, value := range b.headers {
		headers.Add(key, value)
	}

	return &http.Response{
		StatusCode: b.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     headers,
	}
}
