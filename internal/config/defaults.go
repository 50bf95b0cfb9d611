package config

import "time"

const (
	defaultPort       = 8080
	defaultAPIBaseURL = "http://localhost:3000"
	defaultAPITimeout = 10 * time.Second
)

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultAPIBaseURL returns the default delivery API base URL.
func DefaultAPIBaseURL() string {
	return defaultAPIBaseURL
}

// DefaultAPITimeout returns the default outbound request timeout.
func DefaultAPITimeout() time.Duration {
	return defaultAPITimeout
}
