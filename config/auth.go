package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth points the login page at the external provider.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock fabricates the callback locally (development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains the external provider settings. The provider
// completes the flow by redirecting back to RedirectURL with token and
// user query parameters.
type OAuthConfig struct {
	AuthURL     string `env:"AUTH_URL"`
	ClientID    string `env:"CLIENT_ID"     envDefault:"formdesk"`
	RedirectURL string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/"`
	Scope       string `env:"SCOPE"         envDefault:"openid profile email"`
}

// DevAuthConfig controls the mock identity used when AUTH_MODE=mock.
// Leave Role empty to exercise the role-selection flow.
type DevAuthConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-user"`
	Email  string `env:"EMAIL"   envDefault:"dev@example.com"`
	Role   string `env:"ROLE"    envDefault:""`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which login provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL bounds how long an ingested session stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 8 * time.Hour
	}
}
