package config

import (
	"strings"
	"time"
)

// BackendConfig contains configuration for the HMS backend REST API.
// All business logic, persistence, and authorization enforcement live
// there; this service only consumes it over HTTP.
type BackendConfig struct {
	// BaseURL is the backend root, e.g. "https://hms-api.example.com".
	// API paths (/api/auth, /api/appointments, ...) are joined onto it.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:9090"`

	// Timeout is the per-request timeout for backend calls. There is no
	// retry or backoff; a failed call surfaces once as a user-visible error.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to backend configuration.
func (c *BackendConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
}
