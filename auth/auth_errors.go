package auth

import "errors"

// Rejection reasons. They are distinct so tests and logs can tell them apart,
// but the HTTP layer must present both as the same generic failure so a
// caller cannot probe which usernames exist.
var (
	IncorrectUsernameErr = errors.New("incorrect username")
	IncorrectPasswordErr = errors.New("incorrect password")
)

// IsRejection reports whether err is a credential rejection rather than a
// store or hashing failure. Anything else coming out of Authenticate is a
// server-side error and must not be shown as a login rejection.
func IsRejection(err error) bool {
	return errors.Is(err, IncorrectUsernameErr) || errors.Is(err, IncorrectPasswordErr)
}
