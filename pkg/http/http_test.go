package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigg3rX/sybil-verifier/pkg/logging"
)

func TestHTTPConfig_DefaultConfig_ReturnsValidConfig(t *testing.T) {
	config := DefaultHTTPConfig()

	assert.NotNil(t, config)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, 30*time.Second, config.IdleConnTimeout)
	assert.Equal(t, int64(4096), config.MaxResponseSize)
	assert.NoError(t, config.Validate())
}

func TestHTTPConfig_Validate_InvalidConfig_ReturnsError(t *testing.T) {
	tests := []struct {
		name        string
		config      *HTTPConfig
		expectedErr string
	}{
		{
			name:        "zero timeout",
			config:      &HTTPConfig{Timeout: 0, IdleConnTimeout: time.Second, MaxResponseSize: 1},
			expectedErr: "timeout must be positive",
		},
		{
			name:        "zero idle conn timeout",
			config:      &HTTPConfig{Timeout: time.Second, IdleConnTimeout: 0, MaxResponseSize: 1},
			expectedErr: "idleConnTimeout must be positive",
		},
		{
			name:        "negative max response size",
			config:      &HTTPConfig{Timeout: time.Second, IdleConnTimeout: time.Second, MaxResponseSize: -1},
			expectedErr: "maxResponseSize must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestHTTPError_Error_ReturnsFormattedMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 500, Message: "Internal Server Error"}
	assert.Equal(t, "HTTP 500: Internal Server Error", err.Error())
}

func TestNewHTTPClient_NilConfig_UsesDefaultConfig(t *testing.T) {
	client, err := NewHTTPClient(nil, logging.NewNoOpLogger())

	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, client.HTTPConfig.Timeout)
	assert.NotNil(t, client.GetClient())
}

func TestHTTPClient_GetClient_CarriesTunedTransport(t *testing.T) {
	cfg := &HTTPConfig{Timeout: 4 * time.Second, IdleConnTimeout: 20 * time.Second, MaxResponseSize: 512}
	client, err := NewHTTPClient(cfg, logging.NewNoOpLogger())
	require.NoError(t, err)

	base := client.GetClient()
	assert.Equal(t, 4*time.Second, base.Timeout)

	transport, ok := base.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 20*time.Second, transport.IdleConnTimeout)
	assert.Equal(t, 2*time.Second, transport.TLSHandshakeTimeout)
	assert.Equal(t, 2*time.Second, transport.ResponseHeaderTimeout)
}

func TestNewHTTPClient_InvalidConfig_ReturnsError(t *testing.T) {
	client, err := NewHTTPClient(&HTTPConfig{}, logging.NewNoOpLogger())

	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestHTTPClient_Do_ServerErrorIsNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("server error"))
	}))
	defer server.Close()

	client, err := NewHTTPClient(nil, logging.NewNoOpLogger())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, attempts)

	httpErr := client.ErrorFromResponse(resp)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "server error")
}

func TestHTTPClient_Do_ForwardsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client, err := NewHTTPClient(nil, logging.NewNoOpLogger())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token")

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestHTTPClient_Do_SendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"a":1}`, string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := NewHTTPClient(nil, logging.NewNoOpLogger())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, server.URL, strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHTTPClient_Do_ContextCancelled_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewHTTPClient(nil, logging.NewNoOpLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(ctx, req)

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
