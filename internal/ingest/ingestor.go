// Package ingest handles the one-time OAuth callback redirect: it
// detects the token/user query parameters, validates the embedded user
// payload, commits the session atomically, and decides the next
// navigation. Everything else about the URL is left to ordinary routing.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/ports"
)

// Options groups dependencies for the Ingestor.
type Options struct {
	Sessions   ports.SessionStore
	SessionTTL time.Duration // default 8h when zero
	Logger     *slog.Logger
}

// Ingestor is the one-time handler for the provider's callback URL.
type Ingestor struct {
	sessions   ports.SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

// Result is the discriminated outcome of one ingestion attempt.
// When Handled is false the URL carried no callback parameters and the
// ingestor performed no side effects; ordinary routing proceeds.
type Result struct {
	Handled bool
	// Session is set only when a session was committed.
	Session *domainauth.Session
	Nav     domainauth.Navigation
}

// NewIngestor constructs an Ingestor from Options.
func NewIngestor(opts Options) *Ingestor {
	ttl := opts.SessionTTL
	if ttl == 0 {
		ttl = 8 * time.Hour
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{sessions: opts.Sessions, sessionTTL: ttl, logger: logger}
}

// Ingest inspects u for callback parameters. currentSessionID names the
// caller's existing session, if any, so a malformed payload can fail
// closed by clearing it. Per invocation there is at most one store
// write (or one clear) and exactly one navigation decision.
func (i *Ingestor) Ingest(ctx context.Context, u *url.URL, currentSessionID string) (Result, error) {
	q := u.Query()
	token := q.Get("token")
	userStr := q.Get("user")

	if token == "" || userStr == "" {
		// Not a callback. Unrecognized extra parameters are tolerated.
		if len(q) > 0 {
			i.logger.DebugContext(ctx, "ignoring non-callback query parameters", "params", q.Encode())
		}
		return Result{}, nil
	}

	user, err := parseUserPayload(userStr)
	if err != nil {
		// Fail closed: discard any partial session and send the user to
		// login. The malformed payload is not surfaced further.
		i.logger.WarnContext(ctx, "malformed callback payload", "error", err)
		if clearErr := i.sessions.Delete(ctx, currentSessionID); clearErr != nil {
			return Result{}, fmt.Errorf("clear session after malformed payload: %w", clearErr)
		}
		return Result{Handled: true, Nav: domainauth.RedirectTo(domainauth.RouteLogin)}, nil
	}

	// The provider may carry the role inside the user payload or as a
	// top-level role parameter; the payload wins when both are present.
	if !user.Role.Recognized() {
		if role, ok := domainauth.ParseRole(q.Get("role")); ok {
			user.Role = role
		}
	}

	sess := domainauth.Session{
		ID:        uuid.New().String(),
		Token:     domainauth.Credential(token),
		User:      user,
		ExpiresAt: time.Now().Add(i.sessionTTL),
	}
	if saveErr := i.sessions.Save(ctx, sess); saveErr != nil {
		return Result{}, fmt.Errorf("save session: %w", saveErr)
	}

	nav := domainauth.RedirectTo(domainauth.RouteRoleSelection)
	if user.Role.Recognized() {
		nav = domainauth.RedirectTo(domainauth.RouteDashboard)
	}
	return Result{Handled: true, Session: &sess, Nav: nav}, nil
}

// parseUserPayload structurally validates the user query parameter.
// The raw value arrives already URL-decoded by url.Query.
func parseUserPayload(raw string) (domainauth.User, error) {
	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return domainauth.User{}, fmt.Errorf("parse user payload: %w", err)
	}
	if payload.ID == "" || payload.Email == "" {
		return domainauth.User{}, errors.New("user payload missing id or email")
	}

	user := domainauth.User{ID: payload.ID, Email: payload.Email}
	// An unrecognized role is treated as unassigned, not an error; the
	// guard will route to role selection.
	if role, ok := domainauth.ParseRole(payload.Role); ok {
		user.Role = role
	}
	return user, nil
}
