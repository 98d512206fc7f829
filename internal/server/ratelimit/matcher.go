package ratelimit

import (
	"strings"
)

// unlimitedPaths are never rate limited for GET
var unlimitedPaths = map[string]bool{
	"/health":        true,
	"/api/templates": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// A pattern ending in "*" matches any path with that prefix ("/api/generate-*"),
// and one ending in "/" matches its subpaths.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimitedPaths[path] {
		return &EndpointConfig{Limit: 0} // Unlimited
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Then prefix patterns
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		switch {
		case strings.HasSuffix(config.Path, "*"):
			if strings.HasPrefix(path, strings.TrimSuffix(config.Path, "*")) {
				return config
			}
		case strings.HasSuffix(config.Path, "/"):
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	// No match found
	return nil
}
