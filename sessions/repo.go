package sessions

import (
	"errors"
	"time"
)

var SessionNotFoundErr = errors.New("session not found")

// Repo stores session records keyed by token.
type Repo interface {
	// Upsert creates or replaces the record for a token.
	Upsert(token string, session Session) error

	// Get retrieves a session, returning SessionNotFoundErr for unknown
	// tokens.
	Get(token string) (Session, error)

	// Delete removes a session. Deleting an unknown token is not an error.
	Delete(token string) error

	// DeleteExpired removes sessions whose expiry precedes the given time.
	// Backends that evict on their own may treat this as a no-op.
	DeleteExpired(before time.Time) error
}
