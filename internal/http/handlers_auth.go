package httpx

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/ingest"
	"github.com/formdesk/formdesk/internal/validation"
)

// roleChoice validates the role form value against the roles the
// backend accepts.
var roleChoice = validation.OneOf("Role", []string{
	string(domainauth.RoleAdmin),
	string(domainauth.RoleGuest),
})

// AuthServiceInterface defines the auth service operations the HTTP
// layer depends on.
type AuthServiceInterface interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	AssignRole(ctx context.Context, sessionID string, role domainauth.Role) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// LoginURLBuilderFunc adapts a function to the login URL dependency.
type LoginURLBuilderFunc func(state string) string

// AuthHandlers provides HTTP handlers for the login, callback
// ingestion, role selection, and logout flows.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Ingestor     *ingest.Ingestor
	LoginURL     LoginURLBuilderFunc
	Renderer     *Renderer
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Root handles GET /. When the URL carries the provider's callback
// parameters it runs the redirect ingestor exactly once; the redirect
// it issues strips the parameters from the visible URL so a reload
// cannot re-trigger ingestion. Without callback parameters the root
// simply forwards to the login view.
func (h *AuthHandlers) Root(w http.ResponseWriter, r *http.Request) {
	currentSessionID := ""
	if c, err := r.Cookie(sessionCookieName); err == nil {
		currentSessionID = c.Value
	}

	result, err := h.Ingestor.Ingest(r.Context(), r.URL, currentSessionID)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "redirect ingestion failed", "error", err)
		h.clearSessionCookie(w, r)
		http.Redirect(w, r, string(domainauth.RouteLogin), http.StatusSeeOther)
		return
	}

	if !result.Handled {
		http.Redirect(w, r, string(domainauth.RouteLogin), http.StatusSeeOther)
		return
	}

	if result.Session != nil {
		h.setSessionCookie(w, r, *result.Session)
	} else {
		// Fail-closed path: the malformed payload cleared the session.
		h.clearSessionCookie(w, r)
	}
	http.Redirect(w, r, string(result.Nav.To), http.StatusSeeOther)
}

// LoginPage handles GET /login. A visitor who already holds a valid
// session skips the provider and goes where the guard points.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session := getSessionFromRequest(r, h.Svc); session != nil {
		switch decision := domainauth.EvaluateGuard(session, true); decision {
		case domainauth.DecisionLogin:
			// The stored pair is unusable; drop the cookie and show the
			// login page instead of redirecting back to it.
			h.clearSessionCookie(w, r)
		default:
			to := domainauth.RouteDashboard
			if redirectTo, redirect := decision.Redirect(); redirect {
				to = redirectTo
			}
			http.Redirect(w, r, string(to), http.StatusSeeOther)
			return
		}
	}

	state, err := randomState()
	if err != nil {
		h.logger().ErrorContext(r.Context(), "generate login state failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.Renderer.Render(w, r, "login", map[string]any{"LoginURL": h.LoginURL(state)})
}

// RoleSelectionPage handles GET /role-selection. The guard middleware
// has already ensured a valid session.
func (h *AuthHandlers) RoleSelectionPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, "role-selection", map[string]any{"Error": ""})
}

// SelectRole handles POST /role-selection: the assign-role round trip
// persists the new credential and updated user together, after which a
// guard evaluation requiring a role yields allow.
func (h *AuthHandlers) SelectRole(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, string(domainauth.RouteLogin), http.StatusSeeOther)
		return
	}

	choice := strings.ToLower(strings.TrimSpace(r.FormValue("role")))
	if msg := roleChoice(choice); msg != "" {
		h.Renderer.Render(w, r, "role-selection", map[string]any{"Error": msg})
		return
	}
	role, _ := domainauth.ParseRole(choice)

	if _, err := h.Svc.AssignRole(r.Context(), session.ID, role); err != nil {
		h.logger().WarnContext(r.Context(), "assign role failed", "error", err)
		h.Renderer.Render(w, r, "role-selection", map[string]any{
			"Error": "Failed to set role. Please try again.",
		})
		return
	}

	http.Redirect(w, r, string(domainauth.RouteDashboard), http.StatusSeeOther)
}

// Logout handles POST /auth/logout. The upstream call is best effort;
// the local session and cookie are cleared regardless.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(sessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearSessionCookie(w, r)
	http.Redirect(w, r, string(domainauth.RouteLogin), http.StatusSeeOther)
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearSessionCookie clears the session cookie by expiring it immediately.
func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func randomState() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
