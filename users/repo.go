package users

import (
	"context"
	"errors"
)

// Store errors. Repo implementations map their backend's failures onto these
// so callers never match on driver error types.
var (
	NotFoundErr      = errors.New("user not found")
	UsernameTakenErr = errors.New("username already taken")
)

// Repo is the credential store. Implementations must enforce username
// uniqueness and assign a stable ID on Create.
type Repo interface {
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
