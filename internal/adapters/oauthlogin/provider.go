// Package oauthlogin builds the identity provider authorize URL the
// login page sends the browser to. The provider completes the flow by
// redirecting back to the app root with token and user query
// parameters; there is no code exchange on this side.
package oauthlogin

import (
	"errors"
	"strings"

	"golang.org/x/oauth2"

	"github.com/formdesk/formdesk/internal/ports"
)

// Config holds the provider endpoint settings.
type Config struct {
	AuthURL     string
	ClientID    string
	RedirectURL string
	Scope       string
}

// Provider implements ports.LoginURLBuilder against a real provider.
type Provider struct {
	oauth oauth2.Config
}

var _ ports.LoginURLBuilder = (*Provider)(nil)

// New constructs a Provider from Config.
func New(cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.AuthURL) == "" {
		return nil, errors.New("oauth login: auth URL is required")
	}
	return &Provider{
		oauth: oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURL,
			Scopes:      strings.Fields(cfg.Scope),
			Endpoint:    oauth2.Endpoint{AuthURL: cfg.AuthURL},
		},
	}, nil
}

// LoginURL returns the provider authorize URL carrying the given state.
func (p *Provider) LoginURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}
