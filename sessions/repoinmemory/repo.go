package repoinmemory

import (
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/go-session-auth/sessions"
)

var _ sessions.Repo = (*InMemorySessionRepo)(nil)

// InMemorySessionRepo is an in-memory implementation of sessions.Repo. It is
// the default backend for a single-process deployment.
type InMemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]sessions.Session // token -> session
}

// NewInMemorySessionRepo creates a new in-memory session repository
func NewInMemorySessionRepo() *InMemorySessionRepo {
	return &InMemorySessionRepo{
		sessions: make(map[string]sessions.Session),
	}
}

// Upsert creates or updates a session
func (r *InMemorySessionRepo) Upsert(token string, session sessions.Session) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[token] = session
	return nil
}

// Get retrieves a session by token
func (r *InMemorySessionRepo) Get(token string) (sessions.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok {
		return sessions.Session{}, sessions.SessionNotFoundErr
	}
	return session, nil
}

// Delete removes a session
func (r *InMemorySessionRepo) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token) // Already doesn't exist, no error
	return nil
}

// DeleteExpired removes all sessions that expire before the given time
func (r *InMemorySessionRepo) DeleteExpired(before time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, session := range r.sessions {
		if session.ExpiresAt.Before(before) {
			delete(r.sessions, token)
		}
	}
	return nil
}
