package auth

import (
	"github.com/myrecipebox/recipebox-be/internal/models"
)

// UserFinder is the user-lookup capability the resolver consumes.
// Implemented by the user service.
type UserFinder interface {
	GetUserByEmail(email string) (models.User, error)
}

// Resolver turns a bearer token into the account it represents. It is
// the single place token validity and account existence are both
// checked: every authenticated request routes through Resolve.
type Resolver struct {
	tokens *TokenService
	users  UserFinder
}

// NewResolver creates a Resolver.
func NewResolver(tokens *TokenService, users UserFinder) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve verifies the token and loads its subject's account. A failed
// verification yields ErrInvalidToken; a verified token whose subject
// no longer exists (account deleted after issuance) yields
// ErrUserNotFound.
func (r *Resolver) Resolve(tokenStr string) (models.User, error) {
	subject, err := r.tokens.Verify(tokenStr)
	if err != nil {
		return models.User{}, ErrInvalidToken
	}

	user, err := r.users.GetUserByEmail(subject)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}
