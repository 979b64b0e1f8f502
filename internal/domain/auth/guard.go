package auth

// Route identifies a user-facing navigation target.
type Route string

const (
	RouteLogin         Route = "/login"
	RouteRoleSelection Route = "/role-selection"
	RouteDashboard     Route = "/dashboard"
)

// Decision is the route guard's verdict for a navigation attempt.
type Decision int

const (
	// DecisionAllow lets the protected view render.
	DecisionAllow Decision = iota
	// DecisionLogin redirects to the login view.
	DecisionLogin
	// DecisionRoleSelection redirects to the role-selection view.
	DecisionRoleSelection
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionLogin:
		return "login"
	case DecisionRoleSelection:
		return "role-selection"
	default:
		return "unknown"
	}
}

// EvaluateGuard decides whether a navigation attempt may proceed.
// Precedence is strict: a missing or incomplete session always wins
// over a missing role, so an unauthenticated user with a stale role
// still lands on login. The result is recomputed on every attempt;
// callers must not cache it across navigations.
func EvaluateGuard(s *Session, requireRole bool) Decision {
	if s == nil || !s.Valid() {
		return DecisionLogin
	}
	if requireRole && !s.User.Role.Recognized() {
		return DecisionRoleSelection
	}
	return DecisionAllow
}

// Redirect returns the route a non-allow decision points at.
// The second return value is false for DecisionAllow.
func (d Decision) Redirect() (Route, bool) {
	switch d {
	case DecisionLogin:
		return RouteLogin, true
	case DecisionRoleSelection:
		return RouteRoleSelection, true
	default:
		return "", false
	}
}

// Navigation is a discriminated navigation outcome returned by
// operations that used to perform page redirects imperatively.
// The HTTP layer performs the actual redirect.
type Navigation struct {
	Redirect bool
	To       Route
}

// Proceed reports that the caller should continue rendering in place.
func Proceed() Navigation { return Navigation{} }

// RedirectTo points the caller at the given route.
func RedirectTo(r Route) Navigation { return Navigation{Redirect: true, To: r} }
