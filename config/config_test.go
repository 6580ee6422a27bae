package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:9090", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "hms_session", cfg.Session.CookieName)
	assert.True(t, cfg.Session.CookieSecure)
	assert.False(t, cfg.IsDev)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("HMS_API_BASE_URL", "https://hms-api.example.com/")
	t.Setenv("HMS_API_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SESSION_COOKIE_NAME", "sid")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	// Trailing slash is trimmed so client path joins stay predictable.
	assert.Equal(t, "https://hms-api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "sid", cfg.Session.CookieName)
}

func TestSanitize_Guardrails(t *testing.T) {
	cfg := AppConfig{
		HTTP:    HTTPConfig{Addr: "", ReadHeaderTimeoutSeconds: -1, ShutdownTimeoutSeconds: 0},
		Backend: BackendConfig{BaseURL: "  http://localhost:9090/ ", Timeout: -time.Second},
		Session: SessionConfig{CookieName: "", MaxLifetime: -time.Hour},
	}
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10, cfg.HTTP.ReadHeaderTimeoutSeconds)
	assert.Equal(t, 15, cfg.HTTP.ShutdownTimeoutSeconds)
	assert.Equal(t, "http://localhost:9090", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "hms_session", cfg.Session.CookieName)
	assert.Equal(t, time.Duration(0), cfg.Session.MaxLifetime)
}

func TestDetectDevMode_NodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
