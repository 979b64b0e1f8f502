package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	apperrors "github.com/formdesk/formdesk/internal/errors"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// sessionCookieName is the fixed local key the credential/user pair is
// stored under; it is cleared together with the server-side session.
const sessionCookieName = "session_id"

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, authSvc AuthServiceInterface) *domainauth.Session {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	session, err := authSvc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		return nil
	}
	return session
}

// Guard returns a middleware enforcing the route guard decision
// procedure. The decision is recomputed on every request to the
// protected view, never cached, because role can change mid-session.
// Redirects, not errors: an unauthenticated or unassigned user has not
// failed an in-app action yet.
func Guard(authSvc AuthServiceInterface, requireRole bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			decision := domainauth.EvaluateGuard(session, requireRole)
			if to, redirect := decision.Redirect(); redirect {
				// Browser navigations follow redirects; clients asking
				// for JSON get a structured error instead.
				if wantsJSON(r) {
					writeGuardError(w, decision)
					return
				}
				http.Redirect(w, r, string(to), http.StatusSeeOther)
				return
			}
			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeGuardError(w http.ResponseWriter, decision domainauth.Decision) {
	if decision == domainauth.DecisionRoleSelection {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: string(apperrors.ErrCodeRoleRequired),
			Err:     apperrors.RoleRequired("role selection required"),
		})
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: string(apperrors.ErrCodeUnauthenticated),
		Err:     apperrors.Unauthenticated("authentication required"),
	})
}
