// Package config holds the application configuration, loaded from
// environment variables with github.com/caarlos0/env. See the
// per-domain files for available variables:
//   - auth.go: authentication and session configuration
//   - http.go: HTTP server configuration
//   - recordapi.go: record API client configuration
//   - redis.go: optional Redis session store configuration
package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct composing
// domain-specific configuration from separate files.
type AppConfig struct {
	// IsDev controls development mode behavior.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Record API client configuration
	RecordAPI RecordAPIConfig `envPrefix:"RECORD_API_"`

	// Redis configuration; sessions fall back to the in-memory store
	// when no address is configured.
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.RecordAPI.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
