package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint
// configuration. Exact paths are tried first, then suffix patterns ("*/chat"
// matches "/sessions/abc/chat"). Returns nil if nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check endpoint is unlimited.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && config.Path == path {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method != method || !strings.HasPrefix(config.Path, "*/") {
			continue
		}
		if strings.HasSuffix(path, strings.TrimPrefix(config.Path, "*")) {
			return config
		}
	}

	return nil
}
