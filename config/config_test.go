package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func parseConfig(t *testing.T) AppConfig {
	t.Helper()
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("unexpected error parsing config: %v", err)
	}
	cfg.Sanitize()
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := parseConfig(t)

	if cfg.IsDev {
		t.Error("expected IsDev to default to false")
	}
	if cfg.Auth.Mode != AuthModeOAuth {
		t.Errorf("expected default auth mode oauth, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.SessionTTL != 8*time.Hour {
		t.Errorf("expected default session TTL 8h, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.RecordAPI.BaseURL != "http://localhost:5000" {
		t.Errorf("expected default record API base URL, got %q", cfg.RecordAPI.BaseURL)
	}
	if cfg.RecordAPI.Timeout != 10*time.Second {
		t.Errorf("expected default record API timeout 10s, got %v", cfg.RecordAPI.Timeout)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected Redis to be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.KeyPrefix != "session:" {
		t.Errorf("expected default session key prefix, got %q", cfg.Redis.KeyPrefix)
	}
}

func TestAppConfig_FromEnvironment(t *testing.T) {
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("RECORD_API_BASE_URL", "https://api.example.com")
	t.Setenv("RECORD_API_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("OAUTH_AUTH_URL", "https://id.example.com/authorize")
	t.Setenv("DEV_AUTH_ROLE", "admin")

	cfg := parseConfig(t)

	if cfg.Auth.Mode != AuthModeMock {
		t.Errorf("expected mock auth mode, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.SessionTTL != 30*time.Minute {
		t.Errorf("expected session TTL 30m, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %q", cfg.HTTP.Addr)
	}
	if cfg.RecordAPI.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected record API base URL: %q", cfg.RecordAPI.BaseURL)
	}
	if cfg.RecordAPI.Timeout != 5*time.Second {
		t.Errorf("unexpected record API timeout: %v", cfg.RecordAPI.Timeout)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected redis addr: %q", cfg.Redis.Addr)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("unexpected redis db: %d", cfg.Redis.DB)
	}
	if cfg.Auth.OAuth.AuthURL != "https://id.example.com/authorize" {
		t.Errorf("unexpected oauth auth URL: %q", cfg.Auth.OAuth.AuthURL)
	}
	if cfg.Auth.DevAuth.Role != "admin" {
		t.Errorf("unexpected dev auth role: %q", cfg.Auth.DevAuth.Role)
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    AuthMode
		expectError bool
	}{
		{"oauth", AuthModeOAuth, false},
		{"mock", AuthModeMock, false},
		{"OAuth", AuthModeOAuth, false},
		{"MOCK", AuthModeMock, false},
		{"saml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for %q but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if mode != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestSanitize_Guardrails(t *testing.T) {
	cfg := AppConfig{
		Auth:      AuthConfig{SessionTTL: -time.Hour},
		RecordAPI: RecordAPIConfig{Timeout: 0},
	}
	cfg.Sanitize()

	if cfg.Auth.SessionTTL != 8*time.Hour {
		t.Errorf("expected session TTL guardrail 8h, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.RecordAPI.Timeout != 10*time.Second {
		t.Errorf("expected record API timeout guardrail 10s, got %v", cfg.RecordAPI.Timeout)
	}
}

func TestDetectDevMode_NodeEnvFallback(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := parseConfig(t)
	if !cfg.IsDev {
		t.Error("expected NODE_ENV=development to enable dev mode")
	}
}

func TestDetectDevMode_ExplicitFlag(t *testing.T) {
	t.Setenv("DEV", "true")

	cfg := parseConfig(t)
	if !cfg.IsDev {
		t.Error("expected DEV=true to enable dev mode")
	}
}
