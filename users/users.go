package users

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validation errors returned before a user ever reaches the store.
var (
	UsernameRequiredErr = errors.New("username is required")
	PasswordRequiredErr = errors.New("password is required")
)

type User struct {
	ID           string    `json:"id,omitempty"`          // Unique identifier, assigned by the store
	Username     string    `json:"username,omitempty"`    // Unique username
	PasswordHash string    `json:"-"`                     // Hashed version of the user's password - never serialize
	DateJoined   time.Time `json:"date_joined,omitempty"` // Date and time when the user registered
}

// Identity is the minimal public view of an authenticated user. Handlers and
// sessions work with identities; the full User record (and its password hash)
// stays behind the Repo.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}

// ValidateCredentials checks the required registration fields. Length and
// charset policies are deliberately not enforced here.
func ValidateCredentials(username, password string) error {
	if username == "" {
		return UsernameRequiredErr
	}
	if password == "" {
		return PasswordRequiredErr
	}
	return nil
}

// HashPassword hashes a password with bcrypt. The cost is a tunable work
// factor; any value below bcrypt.MinCost falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash verifies a password against a bcrypt hash. The hash embeds
// its own salt and cost, so no parameters travel separately.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
