package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (a trailing "/" enables prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused for longer are dropped by cleanup
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a per-minute configuration. Uploads get a quarter of the default
// budget because each one runs a full extraction.
func NewConfig(enabled bool, requestsPerMinute int) *Config {
	if !enabled {
		return &Config{Enabled: false}
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    requestsPerMinute,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(requestsPerMinute),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits for the screening API.
func DefaultEndpointConfigs(requestsPerMinute int) []EndpointConfig {
	upload := max(1, requestsPerMinute/4)
	return []EndpointConfig{
		{Path: "/parse-cv", Method: "POST", Limit: upload, Window: time.Minute, Burst: max(1, upload/2)},
		{Path: "/health", Method: "GET", Limit: 0},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
