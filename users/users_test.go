package users_test

import (
	"testing"

	"github.com/jrsteele09/go-session-auth/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := users.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "s3cret", hash)

	require.True(t, users.CheckPasswordHash("s3cret", hash))
	require.False(t, users.CheckPasswordHash("wrong", hash))
}

func TestHashPasswordCostIsTunable(t *testing.T) {
	hash, err := users.HashPassword("s3cret", bcrypt.MinCost+1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.MinCost+1, cost)
}

func TestHashPasswordDefaultsCost(t *testing.T) {
	// Zero means "use the library default", the config's way of saying
	// "not tuned".
	hash, err := users.HashPassword("s3cret", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCheckPasswordHashRejectsNonHash(t *testing.T) {
	// A stored plaintext value must never verify - the field always holds a
	// hash.
	require.False(t, users.CheckPasswordHash("s3cret", "s3cret"))
}

func TestValidateCredentials(t *testing.T) {
	require.NoError(t, users.ValidateCredentials("alice", "s3cret"))
	require.ErrorIs(t, users.ValidateCredentials("", "s3cret"), users.UsernameRequiredErr)
	require.ErrorIs(t, users.ValidateCredentials("alice", ""), users.PasswordRequiredErr)
}

func TestIdentityNeverCarriesHash(t *testing.T) {
	user := &users.User{ID: "user-1", Username: "alice", PasswordHash: "$2a$10$abcdef"}

	identity := user.Identity()
	require.Equal(t, "user-1", identity.ID)
	require.Equal(t, "alice", identity.Username)
}
