// Package service orchestrates the session lifecycle and the dashboard
// against the session store and record API ports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/formdesk/formdesk/internal/errors"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Sessions ports.SessionStore
	API      ports.RecordAPI
	// Dashboards, when set, is drained of a session's controller as the
	// session ends (logout or expiry cleanup).
	Dashboards *DashboardManager
	Logger     *slog.Logger
}

// AuthService coordinates session retrieval, role assignment, and logout.
type AuthService struct {
	sessions   ports.SessionStore
	api        ports.RecordAPI
	dashboards *DashboardManager
	logger     *slog.Logger
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		sessions:   opts.Sessions,
		api:        opts.API,
		dashboards: opts.Dashboards,
		logger:     logger,
	}
}

// dropDashboard forgets the session's dashboard controller, if any.
func (s *AuthService) dropDashboard(sessionID string) {
	if s.dashboards != nil {
		s.dashboards.Drop(sessionID)
	}
}

// GetSession retrieves a session by ID, cleaning up expired ones.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthenticated("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			// The store's TTL may have lapsed since the controller was
			// handed out; forget it along with the session.
			s.dropDashboard(sessionID)
			return nil, apperrors.Unauthenticated("no session")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		s.dropDashboard(sessionID)
		return nil, apperrors.Unauthenticated("session expired")
	}

	return &session, nil
}

// AssignRole exchanges the session's credential for a role-bound one
// via the record API and persists the new credential and user together.
// The returned session reflects the persisted state.
func (s *AuthService) AssignRole(ctx context.Context, sessionID string, role domainauth.Role) (*domainauth.Session, error) {
	if !role.Recognized() {
		return nil, apperrors.Validation("unrecognized role", map[string]string{"role": "Role must be admin or guest."})
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	newCred, newUser, err := s.api.AssignRole(ctx, session.Token, role)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "assign role")
	}

	// Trust the backend's user, but never persist a weaker pair than we
	// asked for: a response without a recognized role keeps the chosen one.
	if !newUser.Role.Recognized() {
		newUser.Role = role
	}

	// A 2xx answer with no credential or an incomplete user is a broken
	// response; persisting it would strand the session on a partial pair.
	if !newCred.Present() || !newUser.Valid() {
		return nil, apperrors.Upstream("assign role: incomplete credential pair in response")
	}

	// An unchanged credential means only the role moved; update it in
	// place so the stored pair is never rewritten wholesale.
	if newCred == session.Token {
		updated, setErr := s.sessions.SetRole(ctx, session.ID, newUser.Role)
		if setErr != nil {
			return nil, fmt.Errorf("set role: %w", setErr)
		}
		return &updated, nil
	}

	updated := domainauth.Session{
		ID:        session.ID,
		Token:     newCred,
		User:      newUser,
		ExpiresAt: session.ExpiresAt,
	}
	if saveErr := s.sessions.Save(ctx, updated); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &updated, nil
}

// Logout performs the best-effort upstream logout and clears the local
// session regardless of the upstream response.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to log out
	}

	if session, err := s.sessions.Get(ctx, sessionID); err == nil {
		if logoutErr := s.api.Logout(ctx, session.Token); logoutErr != nil {
			s.logger.WarnContext(ctx, "upstream logout failed", "error", logoutErr)
		}
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.dropDashboard(sessionID)
	return nil
}
