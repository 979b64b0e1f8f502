// Package memstore provides a synchronous in-memory session store.
// It is the default store: a single mutex-guarded register with
// last-writer-wins semantics and no cross-instance synchronization.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/ports"
)

// Store is an in-memory ports.SessionStore. All operations are local
// and synchronous; no network access.
type Store struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// New creates an empty Store.
func New() *Store {
	return &Store{sessions: make(map[string]domainauth.Session)}
}

func (s *Store) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		return errors.New("session is expired")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *Store) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// SetRole performs the read-modify-write under the store lock so the
// update is atomic with respect to the calling operation.
func (s *Store) SetRole(_ context.Context, id string, role domainauth.Role) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	sess.User.Role = role
	s.sessions[id] = sess
	return sess, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
