// Package devauth provides a config-driven login provider for local
// development. It short-circuits the external provider by pointing the
// browser straight back at our own callback with a locally fabricated
// token and user payload.
package devauth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/ports"
)

// Config controls the dev identity. UserID and Email are required;
// Role may be left unassigned to exercise the role-selection flow.
type Config struct {
	UserID string
	Email  string
	Role   domainauth.Role
}

// Provider implements ports.LoginURLBuilder for local development.
type Provider struct {
	user domainauth.User
}

var _ ports.LoginURLBuilder = (*Provider)(nil)

// NewProvider constructs a dev login provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	return &Provider{
		user: domainauth.User{ID: cfg.UserID, Email: cfg.Email, Role: cfg.Role},
	}, nil
}

// LoginURL returns a local callback URL in the same shape a real
// provider redirect would carry: /?token=...&user=<url-encoded JSON>.
func (p *Provider) LoginURL(_ string) string {
	payload, err := json.Marshal(p.user)
	if err != nil {
		// User is built from validated config; marshal cannot fail on it.
		return string(domainauth.RouteLogin)
	}
	token, err := randomString(32)
	if err != nil {
		return string(domainauth.RouteLogin)
	}

	q := url.Values{}
	q.Set("token", "dev-"+token)
	q.Set("user", string(payload))
	return "/?" + q.Encode()
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	return s[:n], nil
}
