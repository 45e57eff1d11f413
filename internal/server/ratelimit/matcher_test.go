package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/jobs/special", Method: "GET", Limit: 1, Window: time.Minute},
		{Path: "/candidates/*/analytics", Method: "GET", Limit: 2, Window: time.Minute},
		{Path: "/jobs/", Method: "GET", Limit: 3, Window: time.Minute},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"exact", "/jobs/special", "GET", 1, false},
		{"pattern", "/candidates/123/analytics", "GET", 2, false},
		{"pattern does not span segments", "/candidates/1/2/analytics", "GET", 0, true},
		{"prefix", "/jobs/abc/match/def", "GET", 3, false},
		{"method mismatch", "/jobs/abc", "POST", 0, true},
		{"health unlimited", "/health", "GET", 0, false},
		{"no match", "/colleges/x/analytics", "GET", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.wantLimit, got.Limit)
			}
		})
	}
}

func TestDefaultEndpointConfigs_Match(t *testing.T) {
	configs := DefaultEndpointConfigs()

	for _, p := range []string{"/recruiters/r1/analytics", "/colleges/COEP/analytics", "/candidates/c1/analytics"} {
		got := MatchEndpoint(p, "GET", configs)
		if assert.NotNil(t, got, p) {
			assert.Equal(t, 60, got.Limit, p)
		}
	}
	assert.Equal(t, 300, MatchEndpoint("/candidates/c1/opportunities", "GET", configs).Limit)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_BLACKLIST", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	assert.Empty(t, cfg.Blacklist)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
