package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrecipebox/recipebox-be/internal/models"
)

// fakeUserFinder is an in-memory UserFinder.
type fakeUserFinder struct {
	users map[string]models.User
}

func (f *fakeUserFinder) GetUserByEmail(email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func TestResolver_Resolve(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	finder := &fakeUserFinder{users: map[string]models.User{
		"a@x.com": {ID: 1, Name: "Alice", Email: "a@x.com"},
	}}
	resolver := NewResolver(tokens, finder)

	token, err := tokens.Issue("a@x.com")
	require.NoError(t, err)

	user, err := resolver.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestResolver_InvalidToken(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	resolver := NewResolver(tokens, &fakeUserFinder{users: map[string]models.User{}})

	_, err := resolver.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolver_VanishedAccount(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	resolver := NewResolver(tokens, &fakeUserFinder{users: map[string]models.User{}})

	// Token verifies but the account is gone.
	token, err := tokens.Issue("deleted@x.com")
	require.NoError(t, err)

	_, err = resolver.Resolve(token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
