package services

import "errors"

// Catalog error kinds. Handlers translate these to HTTP statuses; the
// auth kinds live in the auth package.
var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrDuplicateRecipe  = errors.New("recipe already saved")
	ErrAlreadyFavorite  = errors.New("already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)
