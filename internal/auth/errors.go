package auth

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the auth core. The HTTP layer maps these to
// status codes; the core itself never touches a ResponseWriter.
var (
	// ErrInvalidToken covers every token verification failure. Forged,
	// malformed, missing-subject and expired tokens all collapse to this
	// one kind so callers cannot probe which check tripped.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidCredentials is returned on login failure. Unknown email
	// and wrong password are indistinguishable to prevent account
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail means a registration collided with an existing
	// account.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserNotFound means a token verified but its subject no longer
	// resolves to an account.
	ErrUserNotFound = errors.New("user not found")

	// ErrForbidden is the ownership guard's denial.
	ErrForbidden = errors.New("not allowed to modify this resource")
)

// PolicyError reports the password policy rule a candidate failed.
type PolicyError struct {
	Rule    string
	Message string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("password policy violation (%s): %s", e.Rule, e.Message)
}
