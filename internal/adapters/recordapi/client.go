// Package recordapi implements the HTTP client for the external
// record-management API.
package recordapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/domain/record"
	"github.com/formdesk/formdesk/internal/ports"
)

// ErrUpstream is the single generic failure surfaced for any transport
// error or non-success response. The client does not interpret status
// codes beyond success/failure; fatal versus recoverable is decided by
// the caller.
var ErrUpstream = errors.New("record api request failed")

// Config captures the subset of client behaviour we need.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Client talks to the record API over JSON/HTTP with bearer auth.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.RecordAPI = (*Client)(nil)

// New builds a record API client. Callers should pass a validated config.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("record api base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: baseURL, client: hc, logger: logger}, nil
}

func (c *Client) List(ctx context.Context, cred domainauth.Credential) ([]record.Record, error) {
	var out []record.Record
	if err := c.do(ctx, callParams{method: http.MethodGet, path: "/forms", cred: cred}, &out); err != nil {
		return nil, err
	}
	// Ordering stays as returned by the backend; no client-side resort.
	return out, nil
}

func (c *Client) Create(ctx context.Context, cred domainauth.Credential, fields record.Fields) (record.Record, error) {
	var out record.Record
	err := c.do(ctx, callParams{method: http.MethodPost, path: "/forms", cred: cred, body: fields}, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, cred domainauth.Credential, id string, fields record.Fields) (record.Record, error) {
	var out record.Record
	p := callParams{method: http.MethodPut, path: "/forms/" + url.PathEscape(id), cred: cred, body: fields}
	err := c.do(ctx, p, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, cred domainauth.Credential, id string) error {
	// Acknowledgement only; no payload required by the caller.
	return c.do(ctx, callParams{method: http.MethodDelete, path: "/forms/" + url.PathEscape(id), cred: cred}, nil)
}

// assignRoleResponse mirrors the {token, user} payload of POST /auth/role.
type assignRoleResponse struct {
	Token string          `json:"token"`
	User  domainauth.User `json:"user"`
}

func (c *Client) AssignRole(ctx context.Context, cred domainauth.Credential, role domainauth.Role) (domainauth.Credential, domainauth.User, error) {
	body := map[string]string{"role": string(role)}
	var out assignRoleResponse
	if err := c.do(ctx, callParams{method: http.MethodPost, path: "/auth/role", cred: cred, body: body}, &out); err != nil {
		return "", domainauth.User{}, err
	}
	return domainauth.Credential(out.Token), out.User, nil
}

func (c *Client) Logout(ctx context.Context, cred domainauth.Credential) error {
	return c.do(ctx, callParams{method: http.MethodGet, path: "/auth/logout", cred: cred}, nil)
}

// callParams groups request parameters for do.
type callParams struct {
	method string
	path   string
	cred   domainauth.Credential
	body   any
}

// do performs one round trip. Any failure collapses to ErrUpstream with
// the detail preserved in the message only.
func (c *Client) do(ctx context.Context, p callParams, dst any) error {
	var reqBody io.Reader
	if p.body != nil {
		data, err := json.Marshal(p.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", p.method, p.path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, c.baseURL+p.path, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", p.method, p.path, err)
	}
	if p.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if p.cred.Present() {
		req.Header.Set("Authorization", "Bearer "+string(p.cred))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "record api transport error",
			"method", p.method, "path", p.path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUpstream, p.method, p.path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "record api non-success response",
			"method", p.method, "path", p.path, "status", resp.StatusCode)
		return fmt.Errorf("%w: %s %s: status %d", ErrUpstream, p.method, p.path, resp.StatusCode)
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %s %s: decode response: %v", ErrUpstream, p.method, p.path, err)
	}
	return nil
}
