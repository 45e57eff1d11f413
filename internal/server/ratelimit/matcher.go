package ratelimit

import (
	"path"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
//
// Path is matched in three ways: exactly, as a path.Match pattern when it
// contains '*' (one segment per '*'), or as a prefix when it ends with '/'.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// key is the bucket key for a request matched by this config.
func (c *EndpointConfig) key(requestPath string) string {
	if c.Path == "" {
		return requestPath
	}
	return c.Path
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil when nothing matches. Exact matches win over patterns, and
// patterns over prefixes.
func MatchEndpoint(requestPath string, method string, configs []EndpointConfig) *EndpointConfig {
	if requestPath == "/health" && method == "GET" {
		return &EndpointConfig{Path: "/health"}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && config.Path == requestPath {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method != method || !strings.Contains(config.Path, "*") {
			continue
		}
		if ok, err := path.Match(config.Path, requestPath); err == nil && ok {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(requestPath, config.Path) {
			return config
		}
	}

	return nil
}
