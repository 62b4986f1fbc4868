package env

import (
	"testing"
)

func TestIsValidIPAddress(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"localhost", true},
		{"127.0.0.1", true},
		{"255.255.255.255", true},
		{"256.0.0.1", false},
		{"::1", false},
		{"example.com", false},
	}

	for _, tt := range tests {
		if got := IsValidIPAddress(tt.ip); got != tt.expected {
			t.Errorf("IsValidIPAddress(%q) = %v, want %v", tt.ip, got, tt.expected)
		}
	}
}

func TestIsValidPort(t *testing.T) {
	tests := []struct {
		port     string
		expected bool
	}{
		{"9010", true},
		{"1024", true},
		{"65535", true},
		{"1023", false},
		{"65536", false},
		{"08080", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidPort(tt.port); got != tt.expected {
			t.Errorf("IsValidPort(%q) = %v, want %v", tt.port, got, tt.expected)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://api.twitter.com", true},
		{"https://api.github.com", true},
		{"http://localhost:8080", true},
		{"http://127.0.0.1:9000/path", true},
		{"ftp://example.com", false},
		{"api.twitter.com", false},
		{"https://", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidURL(tt.url); got != tt.expected {
			t.Errorf("IsValidURL(%q) = %v, want %v", tt.url, got, tt.expected)
		}
	}
}

func TestIsValidGitHubRepo(t *testing.T) {
	if !IsValidGitHubRepo("trigg3rX/sybil-list") {
		t.Errorf("expected owner/name to be valid")
	}
	if IsValidGitHubRepo("sybil-list") {
		t.Errorf("expected bare name to be invalid")
	}
	if IsValidGitHubRepo("a/b/c") {
		t.Errorf("expected nested path to be invalid")
	}
}
