package config

import "time"

// SessionConfig contains session cookie and lifetime configuration.
// The effective session lifetime is always capped by the access token's
// expiry claim; MaxLifetime only bounds it further.
type SessionConfig struct {
	// CookieName is the name of the session ID cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"hms_session"`

	// CookieSecure marks the session cookie Secure. Disable only for
	// plain-HTTP local development.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	// MaxLifetime caps how long a session may live regardless of the
	// token expiry claim. Zero means no extra cap.
	MaxLifetime time.Duration `env:"MAX_LIFETIME" envDefault:"0"`
}

// Sanitize applies guardrails to session configuration.
func (c *SessionConfig) Sanitize() {
	if c.CookieName == "" {
		c.CookieName = "hms_session"
	}
	if c.MaxLifetime < 0 {
		c.MaxLifetime = 0
	}
}
