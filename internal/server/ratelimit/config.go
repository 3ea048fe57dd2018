package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (a trailing "/" matches by prefix)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // clients unseen for this long are forgotten
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig reads RATE_LIMIT_* environment variables over the defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("rate_limit")
	v.AutomaticEnv()

	v.SetDefault("enabled", true)
	v.SetDefault("default_limit", 600)
	v.SetDefault("default_window", time.Minute)
	v.SetDefault("cleanup_interval", 5*time.Minute)
	v.SetDefault("idle_timeout", time.Hour)
	v.SetDefault("whitelist", "")
	v.SetDefault("blacklist", "")

	if !v.GetBool("enabled") {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    v.GetInt("default_limit"),
		DefaultWindow:   v.GetDuration("default_window"),
		CleanupInterval: v.GetDuration("cleanup_interval"),
		IdleTimeout:     v.GetDuration("idle_timeout"),
		Whitelist:       parseIPList(v.GetString("whitelist")),
		Blacklist:       parseIPList(v.GetString("blacklist")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Batch runs are the most expensive
		{Path: "/analyze/batch", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},

		{Path: "/analyze", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/analyze/stream", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/analyze/gap", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/analyze/roadmap", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/analyze/compare", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Reads fall through to the default limit; /health is never limited
	}
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
