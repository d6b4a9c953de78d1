// Package auth holds the authentication strategies. The set of strategies is
// closed: callers depend on the Strategy interface and new mechanisms are
// added here without touching call sites.
package auth

import (
	"context"

	"github.com/jrsteele09/go-session-auth/users"
	"github.com/pkg/errors"
)

// Strategy resolves a username/password pair to exactly one of three
// outcomes: an Identity, a rejection (IsRejection(err) == true), or a
// server-side error from the credential store.
type Strategy interface {
	Authenticate(ctx context.Context, username, password string) (users.Identity, error)
}

var _ Strategy = (*LocalPassword)(nil)

// LocalPassword authenticates against password hashes held in the local
// credential store.
type LocalPassword struct {
	users users.Repo
}

func NewLocalPassword(userRepo users.Repo) (*LocalPassword, error) {
	if userRepo == nil {
		return nil, errors.New("[NewLocalPassword] user repo is required")
	}
	return &LocalPassword{users: userRepo}, nil
}

// Authenticate looks the user up by exact username and verifies the supplied
// password against the stored hash. The returned Identity never carries the
// hash.
func (lp *LocalPassword) Authenticate(ctx context.Context, username, password string) (users.Identity, error) {
	user, err := lp.users.GetByUsername(ctx, username)
	if errors.Is(err, users.NotFoundErr) {
		return users.Identity{}, IncorrectUsernameErr
	}
	if err != nil {
		// Store unavailable is not a rejection, it has to surface as a
		// server-side failure.
		return users.Identity{}, errors.Wrap(err, "[Authenticate] user lookup")
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return users.Identity{}, IncorrectPasswordErr
	}

	return user.Identity(), nil
}
