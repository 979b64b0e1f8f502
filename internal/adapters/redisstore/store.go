// Package redisstore provides a Redis-backed session store for
// deployments where sessions must survive a restart.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/ports"
)

// Store is a Redis-based session store. TTL semantics follow the
// session's ExpiresAt.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// New creates a Redis session store with the default key prefix.
func New(client redis.UniversalClient) *Store {
	return &Store{client: client, prefix: "session:"}
}

// NewWithPrefix creates a Redis session store with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

func (s *Store) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Double-check expiration (Redis TTL should handle this, but be defensive)
	if time.Now().After(sess.ExpiresAt) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	return sess, nil
}

// SetRole updates the role inside the stored session under an
// optimistic WATCH so a concurrent Save on the same key restarts the
// update instead of clobbering it.
func (s *Store) SetRole(ctx context.Context, id string, role domainauth.Role) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	key := s.prefix + id
	var updated domainauth.Session

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ports.ErrSessionNotFound
			}
			return fmt.Errorf("redis get: %w", err)
		}

		var sess domainauth.Session
		if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
			return fmt.Errorf("unmarshal session: %w", unmarshalErr)
		}

		ttl := time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return ports.ErrSessionNotFound
		}

		sess.User.Role = role
		out, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = sess
		return nil
	}

	const maxRetries = 3
	for range maxRetries {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue // key changed under us, retry
		}
		return domainauth.Session{}, err
	}
	return domainauth.Session{}, errors.New("set role: too many conflicting writes")
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
