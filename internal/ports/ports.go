// Package ports defines interfaces (hexagonal ports) for session persistence
// and the external record API. Implementations live in internal/adapters;
// orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/domain/record"
)

// SessionStore persists and retrieves user sessions.
// Save writes the credential/user pair atomically; the store never
// holds a partial session. Get after Delete always reports not-found.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	// SetRole updates the user's role in place within an existing
	// session and returns the updated session. It fails with
	// ErrSessionNotFound when no session exists under id.
	SetRole(ctx context.Context, id string, role domainauth.Role) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RecordAPI is the typed contract for the external record service.
// Every call is an independent round trip attaching the credential as a
// bearer header when present. Any transport or non-success response
// surfaces as ErrUpstream; callers decide whether that is fatal.
type RecordAPI interface {
	List(ctx context.Context, cred domainauth.Credential) ([]record.Record, error)
	Create(ctx context.Context, cred domainauth.Credential, fields record.Fields) (record.Record, error)
	Update(ctx context.Context, cred domainauth.Credential, id string, fields record.Fields) (record.Record, error)
	Delete(ctx context.Context, cred domainauth.Credential, id string) error
	// AssignRole exchanges the current credential for a new one bound
	// to the chosen role. The caller must persist both returned values
	// through the SessionStore.
	AssignRole(ctx context.Context, cred domainauth.Credential, role domainauth.Role) (domainauth.Credential, domainauth.User, error)
	// Logout is best effort; callers clear the local session regardless.
	Logout(ctx context.Context, cred domainauth.Credential) error
}

// LoginURLBuilder produces the identity provider URL the login page
// sends the browser to.
type LoginURLBuilder interface {
	LoginURL(state string) string
}

// ErrSessionNotFound is returned when a session is not found.
type sessionNotFoundError struct{}

func (sessionNotFoundError) Error() string { return "session not found" }

var ErrSessionNotFound error = sessionNotFoundError{}
