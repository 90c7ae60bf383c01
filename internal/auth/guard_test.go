package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myrecipebox/recipebox-be/internal/models"
)

func TestAuthorizeMutation(t *testing.T) {
	alice := models.User{ID: 1, Email: "a@x.com"}
	bob := models.User{ID: 2, Email: "b@x.com"}
	owner := int64(1)

	tests := []struct {
		name      string
		principal models.User
		owner     *int64
		allowed   bool
	}{
		{name: "owner may mutate", principal: alice, owner: &owner, allowed: true},
		{name: "non-owner denied", principal: bob, owner: &owner, allowed: false},
		{name: "nil owner denied for owner-id match", principal: alice, owner: nil, allowed: false},
		{name: "nil owner denied for anyone", principal: bob, owner: nil, allowed: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeMutation(tc.principal, tc.owner)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}
