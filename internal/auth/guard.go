package auth

import (
	"github.com/myrecipebox/recipebox-be/internal/models"
)

// AuthorizeMutation decides whether a principal may mutate a resource
// owned by the given user reference. It is the only place ownership is
// compared; recipe update/delete and favorite removal all call through
// here. A nil owner (seeded data) never matches any principal.
func AuthorizeMutation(principal models.User, owner *int64) error {
	if owner == nil || *owner != principal.ID {
		return ErrForbidden
	}
	return nil
}
