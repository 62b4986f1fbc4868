package types

import "time"

// HealthCheckResponse represents the response from the status endpoint
type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Error     string    `json:"error,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Stage   string `json:"stage,omitempty"`
	Details string `json:"details,omitempty"`
}
