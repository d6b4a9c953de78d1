package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-session-auth/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users       map[string]*users.User
	usernameIds map[string]string // username to user id
	lock        sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:       make(map[string]*users.User),
		usernameIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Create(ctx context.Context, username, passwordHash string) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.usernameIds[username]; ok {
		return nil, users.UsernameTakenErr
	}

	user := &users.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		DateJoined:   time.Now(),
	}
	ur.users[user.ID] = user
	ur.usernameIds[username] = user.ID
	return user, nil
}

func (ur *FakeUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernameIds[username]
	if !ok {
		return nil, users.NotFoundErr
	}
	return ur.users[id], nil
}

func (ur *FakeUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, users.NotFoundErr
	}
	return user, nil
}

// Remove deletes a user by ID. Tests use this to simulate an account that
// vanished while a session still references it.
func (ur *FakeUserRepo) Remove(id string) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return
	}
	delete(ur.usernameIds, user.Username)
	delete(ur.users, id)
}
