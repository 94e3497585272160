package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(rules []Rule) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules:         rules,
	}
}

func TestLimiterAllowsWithinBurst(t *testing.T) {
	l := NewLimiter(testConfig([]Rule{
		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
	}))
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("1.2.3.4", "/auth/login", "POST")
		require.True(t, allowed, "request %d within burst should pass", i)
		assert.Equal(t, 20, info.Limit)
	}

	allowed, info := l.Allow("1.2.3.4", "/auth/login", "POST")
	assert.False(t, allowed, "request past burst should be limited")
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(testConfig([]Rule{
		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 1},
	}))
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/auth/login", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.1.1.1", "/auth/login", "POST")
	require.False(t, allowed)

	// A different client has its own bucket.
	allowed, _ = l.Allow("2.2.2.2", "/auth/login", "POST")
	assert.True(t, allowed)
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 1000; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/auth/login", "POST")
		require.True(t, allowed)
	}
}

func TestHealthIsUnlimited(t *testing.T) {
	l := NewLimiter(testConfig(nil))
	defer l.Stop()

	for i := 0; i < 500; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestMatchRulePrefixAndExact(t *testing.T) {
	rules := []Rule{
		{Path: "/recommendations", Method: "GET", Limit: 30, Window: time.Minute},
		{Path: "/recommendations/", Method: "GET", Limit: 30, Window: time.Minute},
	}

	assert.NotNil(t, matchRule("/recommendations", "GET", rules))
	assert.NotNil(t, matchRule("/recommendations/profile", "GET", rules))
	assert.Nil(t, matchRule("/scholarships", "GET", rules))
	assert.Nil(t, matchRule("/recommendations", "POST", rules))
}
