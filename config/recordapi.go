package config

import "time"

// RecordAPIConfig contains settings for the external record API client.
type RecordAPIConfig struct {
	// BaseURL is the record API root (e.g., "http://localhost:5000").
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000"`

	// Timeout bounds each round trip. The core imposes no timeouts of
	// its own; this is the transport-level bound.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to record API configuration values.
func (r *RecordAPIConfig) Sanitize() {
	if r.Timeout <= 0 {
		r.Timeout = 10 * time.Second
	}
}
