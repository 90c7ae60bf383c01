package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrecipebox/recipebox-be/internal/auth"
)

func TestUserService_Register(t *testing.T) {
	users := NewUserService(newTestDB(t), newTestHasher())

	user, err := users.Register("Alice", "a@x.com", "Abcdef1!")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.PasswordHash, "registration response must not carry the hash")

	// The stored hash is opaque, never the plaintext.
	stored, err := users.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "Abcdef1!", stored.PasswordHash)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	users := NewUserService(newTestDB(t), newTestHasher())

	registerUser(t, users, "Alice", "a@x.com")

	// A duplicate registration fails, it does not overwrite.
	_, err := users.Register("Mallory", "a@x.com", "Abcdef1!")
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	user, err := users.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}

func TestUserService_RegisterWeakPassword(t *testing.T) {
	users := NewUserService(newTestDB(t), newTestHasher())

	_, err := users.Register("Alice", "a@x.com", "weak")
	require.Error(t, err)

	var policyErr *auth.PolicyError
	assert.True(t, errors.As(err, &policyErr))

	// The rejected registration must not have created an account.
	_, err = users.GetUserByEmail("a@x.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestUserService_Authenticate(t *testing.T) {
	users := NewUserService(newTestDB(t), newTestHasher())
	registerUser(t, users, "Alice", "a@x.com")

	user, err := users.Authenticate("a@x.com", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestUserService_AuthenticateFailuresAreGeneric(t *testing.T) {
	users := NewUserService(newTestDB(t), newTestHasher())
	registerUser(t, users, "Alice", "a@x.com")

	// Wrong password and unknown email yield the identical error kind.
	_, wrongPw := users.Authenticate("a@x.com", "Wrong1!pw")
	_, unknown := users.Authenticate("nobody@x.com", "Abcdef1!")

	assert.ErrorIs(t, wrongPw, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestUserService_GetUserByID(t *testing.T) {
	users := NewUserService(newTestDB(t), newTestHasher())
	created := registerUser(t, users, "Alice", "a@x.com")

	user, err := users.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = users.GetUserByID(9999)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
