// Package sessions implements the server-side session lifecycle: establish a
// session on successful authentication, resolve the token back to an
// identity on every request, terminate it on logout.
package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/jrsteele09/go-session-auth/users"
	"github.com/pkg/errors"
)

const tokenBytes = 32

// Manager owns the session lifecycle. It is created once at process start
// and is immutable afterwards.
type Manager struct {
	repo    Repo
	users   users.Repo
	ttl     time.Duration
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

func NewManager(repo Repo, userRepo users.Repo, ttl time.Duration, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] session repo is required")
	}
	if userRepo == nil {
		return nil, errors.New("[NewManager] user repo is required")
	}
	if ttl <= 0 {
		return nil, errors.New("[NewManager] ttl must be positive")
	}

	m := &Manager{
		repo:    repo,
		users:   userRepo,
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Establish creates a session for an authenticated identity and returns the
// opaque token the transport layer hands to the client. The token space is
// large enough that collisions are negligible, so the insert needs no
// coordination.
func (m *Manager) Establish(ctx context.Context, identity users.Identity) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", errors.Wrap(err, "[Establish] token generation")
	}

	now := m.nowTime()
	session := Session{
		Token:     token,
		UserID:    identity.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.repo.Upsert(token, session); err != nil {
		return "", errors.Wrap(err, "[Establish] store session")
	}
	return token, nil
}

// Resolve maps a token back to a full identity. An absent, expired, or
// orphaned session (user no longer exists) resolves to nil with no error;
// a failing store is an error so authorization checks can fail closed.
// The user record is always re-read from the credential store rather than
// trusting anything cached in the session.
func (m *Manager) Resolve(ctx context.Context, token string) (*users.Identity, error) {
	if token == "" {
		return nil, nil
	}

	session, err := m.repo.Get(token)
	if errors.Is(err, SessionNotFoundErr) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Resolve] session lookup")
	}

	if session.Expired(m.nowTime()) {
		_ = m.repo.Delete(token)
		return nil, nil
	}

	user, err := m.users.GetByID(ctx, session.UserID)
	if errors.Is(err, users.NotFoundErr) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Resolve] user lookup")
	}

	identity := user.Identity()
	return &identity, nil
}

// Terminate removes the session for a token. Terminating an unknown or
// already-terminated token is a no-op.
func (m *Manager) Terminate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.repo.Delete(token); err != nil {
		return errors.Wrap(err, "[Terminate] delete session")
	}
	return nil
}

// PurgeExpired removes sessions past their expiry from the repo. Resolve
// already refuses expired sessions, so this only reclaims storage; it is
// meant to run periodically.
func (m *Manager) PurgeExpired(ctx context.Context) error {
	if err := m.repo.DeleteExpired(m.nowTime()); err != nil {
		return errors.Wrap(err, "[PurgeExpired] delete expired sessions")
	}
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
