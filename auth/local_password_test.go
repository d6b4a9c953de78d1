package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/jrsteele09/go-session-auth/users/repofake"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUsername = "alice"
	testPassword = "s3cret"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo *repofake.FakeUserRepo
	strategy *auth.LocalPassword
	userID   string
}

// setupTestFixture creates a strategy backed by a fake repo with one
// registered user
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := repofake.NewFakeUserRepo()

	hash, err := users.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	user, err := ur.Create(context.Background(), testUsername, hash)
	require.NoError(t, err)

	strategy, err := auth.NewLocalPassword(ur)
	require.NoError(t, err)

	return &testFixture{
		userRepo: ur,
		strategy: strategy,
		userID:   user.ID,
	}
}

func TestAuthenticateAccepted(t *testing.T) {
	f := setupTestFixture(t)

	identity, err := f.strategy.Authenticate(context.Background(), testUsername, testPassword)
	require.NoError(t, err)
	require.Equal(t, f.userID, identity.ID)
	require.Equal(t, testUsername, identity.Username)
}

func TestAuthenticateUnknownUsername(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.strategy.Authenticate(context.Background(), "bob", testPassword)
	require.ErrorIs(t, err, auth.IncorrectUsernameErr)
	require.True(t, auth.IsRejection(err))
}

func TestAuthenticateWrongPassword(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.strategy.Authenticate(context.Background(), testUsername, "wrong")
	require.ErrorIs(t, err, auth.IncorrectPasswordErr)
	require.True(t, auth.IsRejection(err))
}

func TestBothRejectionReasonsAreRejections(t *testing.T) {
	// Callers are expected to collapse both variants into one generic
	// denial; IsRejection is the only distinction they should make.
	f := setupTestFixture(t)

	_, unknownUserErr := f.strategy.Authenticate(context.Background(), "bob", testPassword)
	_, wrongPasswordErr := f.strategy.Authenticate(context.Background(), testUsername, "wrong")

	require.True(t, auth.IsRejection(unknownUserErr))
	require.True(t, auth.IsRejection(wrongPasswordErr))
}

func TestAuthenticateStoreFailure(t *testing.T) {
	strategy, err := auth.NewLocalPassword(&failingUserRepo{})
	require.NoError(t, err)

	_, err = strategy.Authenticate(context.Background(), testUsername, testPassword)
	require.Error(t, err)
	require.False(t, auth.IsRejection(err), "a store failure must not look like a login rejection")
}

func TestNewLocalPasswordRequiresRepo(t *testing.T) {
	_, err := auth.NewLocalPassword(nil)
	require.Error(t, err)
}

// failingUserRepo simulates an unreachable credential store
type failingUserRepo struct{}

var errStoreDown = errors.New("store unavailable")

func (f *failingUserRepo) Create(ctx context.Context, username, passwordHash string) (*users.User, error) {
	return nil, errStoreDown
}

func (f *failingUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return nil, errStoreDown
}

func (f *failingUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return nil, errStoreDown
}
