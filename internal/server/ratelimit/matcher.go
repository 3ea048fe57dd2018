package ratelimit

import "strings"

// unlimited marks endpoints that are never rate limited.
var unlimited = &EndpointConfig{}

// MatchEndpoint returns the configuration for a request, or nil when only the
// default limit applies. Exact path matches win over prefix matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
