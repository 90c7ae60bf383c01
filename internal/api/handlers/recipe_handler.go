package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/myrecipebox/recipebox-be/internal/ai"
	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/models"
	"github.com/myrecipebox/recipebox-be/internal/services"
)

// RecipeHandler handles HTTP requests for the recipe catalog.
type RecipeHandler struct {
	service   services.RecipeServiceProvider
	suggester ai.Suggester
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service services.RecipeServiceProvider, suggester ai.Suggester) *RecipeHandler {
	return &RecipeHandler{service: service, suggester: suggester}
}

// RecipePayload defines the structure for recipe creation requests.
type RecipePayload struct {
	Title       string   `json:"title" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1"`
	Steps       string   `json:"steps" validate:"required"`
	ImageURL    string   `json:"image_url"`
}

// RecipeUpdatePayload defines the structure for partial updates; absent
// fields stay untouched.
type RecipeUpdatePayload struct {
	Title       *string   `json:"title"`
	Ingredients *[]string `json:"ingredients"`
	Steps       *string   `json:"steps"`
	ImageURL    *string   `json:"image_url"`
}

// SuggestPayload defines the structure for AI suggestion requests.
type SuggestPayload struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1"`
}

// Create handles the request to create a new recipe owned by the
// authenticated user.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload RecipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	recipe, err := h.service.CreateRecipe(principal, models.Recipe{
		Title:       payload.Title,
		Ingredients: payload.Ingredients,
		Steps:       payload.Steps,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", principal.ID).Msg("Failed to create recipe")
		http.Error(w, "Failed to create recipe", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(recipe)
}

// List handles the paginated recipe listing.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)

	recipes, total, err := h.service.ListRecipes(page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recipes")
		http.Error(w, "Failed to list recipes", http.StatusInternalServerError)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
		"recipes":     recipes,
	})
}

// Search handles title search with the same pagination envelope.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "Missing query parameter q", http.StatusBadRequest)
		return
	}
	page, pageSize := paginationParams(r)

	recipes, total, err := h.service.SearchRecipes(q, page, pageSize)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("Failed to search recipes")
		http.Error(w, "Failed to search recipes", http.StatusInternalServerError)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"query":       q,
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
		"recipes":     recipes,
	})
}

// Get handles the request to get a single recipe by its ID.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		http.Error(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}

	recipe, err := h.service.GetRecipeByID(id)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			http.Error(w, "Recipe not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("recipe_id", id).Msg("Failed to get recipe")
		http.Error(w, "Failed to get recipe", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recipe)
}

// Update handles a partial update of a recipe the principal owns.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id, err := recipeID(r)
	if err != nil {
		http.Error(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}

	var payload RecipeUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	recipe, err := h.service.UpdateRecipe(principal, id, services.RecipeUpdate{
		Title:       payload.Title,
		Ingredients: payload.Ingredients,
		Steps:       payload.Steps,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		writeMutationError(w, err, id, principal.ID, "update")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recipe)
}

// Delete handles the deletion of a recipe the principal owns.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id, err := recipeID(r)
	if err != nil {
		http.Error(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteRecipe(principal, id); err != nil {
		writeMutationError(w, err, id, principal.ID, "delete")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Recipe deleted"})
}

// Suggest asks the AI collaborator for a recipe idea from an ingredient
// list.
func (h *RecipeHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var payload SuggestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	recipes, err := h.suggester.SuggestRecipes(r.Context(), payload.Ingredients)
	if err != nil {
		log.Error().Err(err).Msg("Recipe suggestion failed")
		http.Error(w, "AI returned invalid JSON", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"recipes": recipes})
}

// SaveSuggested persists a suggested recipe under the authenticated
// user.
func (h *RecipeHandler) SaveSuggested(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload RecipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(payload); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	recipe, err := h.service.SaveSuggested(principal, models.Recipe{
		Title:       payload.Title,
		Ingredients: payload.Ingredients,
		Steps:       payload.Steps,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateRecipe) {
			http.Error(w, "Recipe already saved", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Int64("user_id", principal.ID).Msg("Failed to save suggested recipe")
		http.Error(w, "Failed to save recipe", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Recipe saved",
		"recipe":  recipe,
	})
}

// writeMutationError maps recipe mutation failures to HTTP statuses. A
// denied ownership check is a visible 403, never a silent no-op.
func writeMutationError(w http.ResponseWriter, err error, recipeID, userID int64, op string) {
	switch {
	case errors.Is(err, services.ErrRecipeNotFound):
		http.Error(w, "Recipe not found", http.StatusNotFound)
	case errors.Is(err, auth.ErrForbidden):
		log.Warn().Int64("recipe_id", recipeID).Int64("user_id", userID).Str("op", op).Msg("Ownership check denied mutation")
		http.Error(w, "Not allowed to modify this recipe", http.StatusForbidden)
	default:
		log.Error().Err(err).Int64("recipe_id", recipeID).Str("op", op).Msg("Recipe mutation failed")
		http.Error(w, "Failed to "+op+" recipe", http.StatusInternalServerError)
	}
}

// recipeID parses the {id} route parameter.
func recipeID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// paginationParams parses page and page_size with defaults 1 and 10,
// clamping page_size to [1,100].
func paginationParams(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = v
		if pageSize > 100 {
			pageSize = 100
		}
	}
	return page, pageSize
}
