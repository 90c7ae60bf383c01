package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_AddAndList(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, newTestHasher())
	recipes := NewRecipeService(db)
	favorites := NewFavoriteService(db)
	alice := registerUser(t, users, "Alice", "a@x.com")
	bob := registerUser(t, users, "Bob", "b@x.com")

	created, err := recipes.CreateRecipe(alice, pancakes())
	require.NoError(t, err)

	require.NoError(t, favorites.AddFavorite(bob, created.ID))

	favs, err := favorites.GetFavorites(bob)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, created.ID, favs[0].ID)
	assert.True(t, favs[0].IsFavourite)

	// Favorites are per-user.
	aliceFavs, err := favorites.GetFavorites(alice)
	require.NoError(t, err)
	assert.Empty(t, aliceFavs)
}

func TestFavoriteService_AddDuplicate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, newTestHasher())
	recipes := NewRecipeService(db)
	favorites := NewFavoriteService(db)
	alice := registerUser(t, users, "Alice", "a@x.com")

	created, err := recipes.CreateRecipe(alice, pancakes())
	require.NoError(t, err)

	require.NoError(t, favorites.AddFavorite(alice, created.ID))
	assert.ErrorIs(t, favorites.AddFavorite(alice, created.ID), ErrAlreadyFavorite)
}

func TestFavoriteService_AddMissingRecipe(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, newTestHasher())
	favorites := NewFavoriteService(db)
	alice := registerUser(t, users, "Alice", "a@x.com")

	assert.ErrorIs(t, favorites.AddFavorite(alice, 9999), ErrRecipeNotFound)
}

func TestFavoriteService_Remove(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, newTestHasher())
	recipes := NewRecipeService(db)
	favorites := NewFavoriteService(db)
	alice := registerUser(t, users, "Alice", "a@x.com")

	created, err := recipes.CreateRecipe(alice, pancakes())
	require.NoError(t, err)
	require.NoError(t, favorites.AddFavorite(alice, created.ID))

	require.NoError(t, favorites.RemoveFavorite(alice, created.ID))

	favs, err := favorites.GetFavorites(alice)
	require.NoError(t, err)
	assert.Empty(t, favs)

	// Removing again reports not found.
	assert.ErrorIs(t, favorites.RemoveFavorite(alice, created.ID), ErrFavoriteNotFound)
}
