package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/models"
	"github.com/myrecipebox/recipebox-be/internal/services"
)

// FavoriteHandler handles HTTP requests for the favorites list.
type FavoriteHandler struct {
	service services.FavoriteServiceProvider
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service services.FavoriteServiceProvider) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// Add saves a recipe to the authenticated user's favorites.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	recipeID, err := strconv.ParseInt(chi.URLParam(r, "recipeID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}

	if err := h.service.AddFavorite(principal, recipeID); err != nil {
		switch {
		case errors.Is(err, services.ErrRecipeNotFound):
			http.Error(w, "Recipe not found", http.StatusNotFound)
		case errors.Is(err, services.ErrAlreadyFavorite):
			http.Error(w, "Already in favorites", http.StatusBadRequest)
		default:
			log.Error().Err(err).Int64("user_id", principal.ID).Int64("recipe_id", recipeID).Msg("Failed to add favorite")
			http.Error(w, "Failed to add favorite", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Added to favorites"})
}

// Remove deletes a recipe from the authenticated user's favorites.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	recipeID, err := strconv.ParseInt(chi.URLParam(r, "recipeID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveFavorite(principal, recipeID); err != nil {
		switch {
		case errors.Is(err, services.ErrFavoriteNotFound):
			http.Error(w, "Favorite not found", http.StatusNotFound)
		case errors.Is(err, auth.ErrForbidden):
			http.Error(w, "Not allowed to modify this favorite", http.StatusForbidden)
		default:
			log.Error().Err(err).Int64("user_id", principal.ID).Int64("recipe_id", recipeID).Msg("Failed to remove favorite")
			http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Removed from favorites"})
}

// List returns the recipes the authenticated user has favorited.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	recipes, err := h.service.GetFavorites(principal)
	if err != nil {
		log.Error().Err(err).Int64("user_id", principal.ID).Msg("Failed to list favorites")
		http.Error(w, "Failed to list favorites", http.StatusInternalServerError)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recipes)
}
