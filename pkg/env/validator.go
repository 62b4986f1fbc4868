package env

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	githubRepoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
)

func IsEmpty(value string) bool {
	return value == ""
}

func IsValidIPAddress(ipAddress string) bool {
	if ipAddress == "localhost" {
		return true
	}
	ip := net.ParseIP(ipAddress)
	return ip != nil && ip.To4() != nil
}

// Port number, unprivileged range only
func IsValidPort(port string) bool {
	n, err := strconv.Atoi(port)
	if err != nil || strconv.Itoa(n) != port {
		return false
	}
	return n >= 1024 && n <= 65535
}

// URL with http or https scheme and a host
func IsValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Hostname() == "" {
		return false
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return false
		}
	}
	return !strings.ContainsAny(u.Host, " \t")
}

// GitHub repository in owner/name form
func IsValidGitHubRepo(repo string) bool {
	return githubRepoPattern.MatchString(repo)
}
