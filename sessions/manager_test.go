package sessions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/sessions/repoinmemory"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/jrsteele09/go-session-auth/users/repofake"
	"github.com/stretchr/testify/require"
)

const testTTL = time.Hour

// testFixture holds all test dependencies
type testFixture struct {
	sessionRepo *repoinmemory.InMemorySessionRepo
	userRepo    *repofake.FakeUserRepo
	manager     *sessions.Manager
	identity    users.Identity
	now         time.Time
}

func setupTestFixture(t *testing.T, options ...sessions.ManagerOption) *testFixture {
	t.Helper()

	sr := repoinmemory.NewInMemorySessionRepo()
	ur := repofake.NewFakeUserRepo()

	user, err := ur.Create(context.Background(), "alice", "$2a$10$hash")
	require.NoError(t, err)

	manager, err := sessions.NewManager(sr, ur, testTTL, options...)
	require.NoError(t, err)

	return &testFixture{
		sessionRepo: sr,
		userRepo:    ur,
		manager:     manager,
		identity:    user.Identity(),
	}
}

func TestEstablishAndResolve(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	token, err := f.manager.Establish(ctx, f.identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := f.manager.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, f.identity.ID, resolved.ID)
	require.Equal(t, "alice", resolved.Username)
}

func TestEstablishTokensAreUnique(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	first, err := f.manager.Establish(ctx, f.identity)
	require.NoError(t, err)
	second, err := f.manager.Establish(ctx, f.identity)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestResolveUnknownToken(t *testing.T) {
	f := setupTestFixture(t)

	resolved, err := f.manager.Resolve(context.Background(), "no-such-token")
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveEmptyToken(t *testing.T) {
	f := setupTestFixture(t)

	resolved, err := f.manager.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveExpiredSession(t *testing.T) {
	now := time.Now()
	f := setupTestFixture(t, sessions.WithNowTime(func() time.Time { return now }))
	ctx := context.Background()

	token, err := f.manager.Establish(ctx, f.identity)
	require.NoError(t, err)

	// Move past the TTL; the session must stop resolving without error.
	now = now.Add(testTTL + time.Minute)

	resolved, err := f.manager.Resolve(ctx, token)
	require.NoError(t, err)
	require.Nil(t, resolved)

	// The expired record is gone from the repo as well.
	_, err = f.sessionRepo.Get(token)
	require.ErrorIs(t, err, sessions.SessionNotFoundErr)
}

func TestResolveDeletedUser(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	token, err := f.manager.Establish(ctx, f.identity)
	require.NoError(t, err)

	f.userRepo.Remove(f.identity.ID)

	// A session referencing a vanished user is "no identity", not an error.
	resolved, err := f.manager.Resolve(ctx, token)
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveStoreFailure(t *testing.T) {
	sr := repoinmemory.NewInMemorySessionRepo()
	ur := repofake.NewFakeUserRepo()
	user, err := ur.Create(context.Background(), "alice", "$2a$10$hash")
	require.NoError(t, err)

	manager, err := sessions.NewManager(&failingSessionRepo{inner: sr}, ur, testTTL)
	require.NoError(t, err)

	token, err := manager.Establish(context.Background(), user.Identity())
	require.NoError(t, err)

	_, err = manager.Resolve(context.Background(), token)
	require.Error(t, err, "a failing store must surface as an error so guards can fail closed")
}

func TestPurgeExpired(t *testing.T) {
	now := time.Now()
	f := setupTestFixture(t, sessions.WithNowTime(func() time.Time { return now }))
	ctx := context.Background()

	token, err := f.manager.Establish(ctx, f.identity)
	require.NoError(t, err)

	now = now.Add(testTTL + time.Minute)
	require.NoError(t, f.manager.PurgeExpired(ctx))

	_, err = f.sessionRepo.Get(token)
	require.ErrorIs(t, err, sessions.SessionNotFoundErr)
}

func TestTerminateIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	token, err := f.manager.Establish(ctx, f.identity)
	require.NoError(t, err)

	require.NoError(t, f.manager.Terminate(ctx, token))

	resolved, err := f.manager.Resolve(ctx, token)
	require.NoError(t, err)
	require.Nil(t, resolved)

	// Second terminate is a no-op, not an error.
	require.NoError(t, f.manager.Terminate(ctx, token))
	require.NoError(t, f.manager.Terminate(ctx, "never-existed"))
}

func TestNewManagerValidatesDependencies(t *testing.T) {
	sr := repoinmemory.NewInMemorySessionRepo()
	ur := repofake.NewFakeUserRepo()

	_, err := sessions.NewManager(nil, ur, testTTL)
	require.Error(t, err)

	_, err = sessions.NewManager(sr, nil, testTTL)
	require.Error(t, err)

	_, err = sessions.NewManager(sr, ur, 0)
	require.Error(t, err)
}

// failingSessionRepo lets Upsert through and fails reads, simulating a store
// that goes away mid-session.
type failingSessionRepo struct {
	inner sessions.Repo
}

var errRepoDown = errors.New("session store unavailable")

func (f *failingSessionRepo) Upsert(token string, session sessions.Session) error {
	return f.inner.Upsert(token, session)
}

func (f *failingSessionRepo) Get(token string) (sessions.Session, error) {
	return sessions.Session{}, errRepoDown
}

func (f *failingSessionRepo) Delete(token string) error {
	return errRepoDown
}

func (f *failingSessionRepo) DeleteExpired(before time.Time) error {
	return errRepoDown
}
