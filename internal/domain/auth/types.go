// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "time"

// Role represents an application's authorization role.
// Kept in string form for easy persistence and cookies.
// The zero value means the user is provisioned but unassigned.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleGuest      Role = "guest"
	RoleUnassigned Role = ""
)

// ParseRole maps a raw string onto a recognized Role.
// The second return value reports whether the input was recognized.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleGuest:
		return RoleGuest, true
	default:
		return RoleUnassigned, false
	}
}

// Recognized reports whether the role is one of the two assignable values.
func (r Role) Recognized() bool { return r == RoleAdmin || r == RoleGuest }

// Credential is the opaque bearer token issued by the identity flow.
// It is never parsed, only attached to outgoing requests.
type Credential string

// Present reports whether a credential has been issued.
func (c Credential) Present() bool { return c != "" }

// User is the principal embedded in the provider's callback payload.
// ID and Email are mandatory for the user to be considered valid;
// Role stays unassigned until role selection completes.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// Valid reports whether the user carries the mandatory identity fields.
func (u User) Valid() bool { return u.ID != "" && u.Email != "" }

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier; Token and User are written and
// cleared together, never separately.
type Session struct {
	ID        string     `json:"id"`
	Token     Credential `json:"token"`
	User      User       `json:"user"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Valid reports whether the session holds a complete credential/user pair.
// A credential without a matching user, or the reverse, counts as
// unauthenticated.
func (s Session) Valid() bool { return s.Token.Present() && s.User.Valid() }

// IsAdmin reports whether the session's user holds the admin role.
func (s Session) IsAdmin() bool { return s.User.Role == RoleAdmin }
