package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *time.Time) {
	t.Helper()
	now := epoch
	l := NewLimiter(cfg)
	l.now = func() time.Time { return now }
	t.Cleanup(l.Stop)
	return l, &now
}

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.66": true},
		EndpointConfigs: []EndpointConfig{
			{Path: "/analyze", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
			{Path: "/analyses/", Method: "GET", Limit: 1, Window: time.Minute},
		},
	}
}

func TestAllow_BurstThenRefill(t *testing.T) {
	l, now := newTestLimiter(t, testConfig())

	allowed, info := l.Allow("1.2.3.4", "/analyze", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)
	assert.Equal(t, 1, info.Remaining)

	allowed, _ = l.Allow("1.2.3.4", "/analyze", "POST")
	assert.True(t, allowed)

	allowed, info = l.Allow("1.2.3.4", "/analyze", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
	assert.True(t, info.ResetTime.After(*now))

	// One token per second at 60 per minute
	*now = now.Add(time.Second)
	allowed, _ = l.Allow("1.2.3.4", "/analyze", "POST")
	assert.True(t, allowed)
}

func TestAllow_ClientsAndEndpointsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	allowed, _ := l.Allow("1.2.3.4", "/analyses/abc", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/analyses/abc", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("5.6.7.8", "/analyses/abc", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/analyze", "POST")
	assert.True(t, allowed)
}

func TestAllow_Lists(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/analyses/abc", "GET")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.66", "/health", "GET")
	assert.False(t, allowed)
}

func TestAllow_HealthAndDisabled(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())
	for i := 0; i < 200; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}

	off, _ := newTestLimiter(t, &Config{Enabled: false})
	allowed, info := off.Allow("1.2.3.4", "/analyze", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 0, info.Limit)
}

func TestEvictIdle(t *testing.T) {
	l, now := newTestLimiter(t, testConfig())

	l.Allow("1.2.3.4", "/analyze", "POST")
	*now = now.Add(2 * time.Hour)
	l.Allow("5.6.7.8", "/analyze", "POST")

	l.evictIdle()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "5.6.7.8:/analyze:POST")
}

func TestStop_Twice(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, CleanupInterval: time.Millisecond})
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := testConfig().EndpointConfigs

	assert.Equal(t, 60, MatchEndpoint("/analyze", "POST", configs).Limit)
	assert.Equal(t, 1, MatchEndpoint("/analyses/123", "GET", configs).Limit)
	assert.Nil(t, MatchEndpoint("/analyze", "GET", configs))
	assert.Nil(t, MatchEndpoint("/analyses", "GET", configs))
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestDefaultEndpointConfigs_CoverAnalysisRoutes(t *testing.T) {
	configs := DefaultEndpointConfigs()
	for _, path := range []string{"/analyze", "/analyze/stream", "/analyze/gap", "/analyze/roadmap", "/analyze/compare"} {
		ec := MatchEndpoint(path, "POST", configs)
		require.NotNil(t, ec, path)
		assert.Equal(t, 60, ec.Limit, path)
	}
	assert.Equal(t, 10, MatchEndpoint("/analyze/batch", "POST", configs).Limit)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
