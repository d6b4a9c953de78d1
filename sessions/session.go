package sessions

import "time"

// Session is the server-held record correlating an opaque client token to a
// user identifier. It holds a lookup key only - never a copy of mutable user
// fields - so every request re-reads the user from the credential store.
type Session struct {
	Token     string    // Opaque random token, also the storage key
	UserID    string    // User identifier the session references
	CreatedAt time.Time // When the session was established
	ExpiresAt time.Time // When the session stops resolving
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
