package services

import (
	"database/sql"

	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/models"
)

// FavoriteServiceProvider defines the interface for favorite services.
type FavoriteServiceProvider interface {
	AddFavorite(principal models.User, recipeID int64) error
	RemoveFavorite(principal models.User, recipeID int64) error
	GetFavorites(principal models.User) ([]models.Recipe, error)
}

// FavoriteService provides business logic for per-user favorites.
type FavoriteService struct {
	db *sql.DB
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(db *sql.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// AddFavorite saves a recipe to the principal's favorites. The recipe
// existence check, the duplicate check and the insert run in a single
// transaction so a partial write is never observable.
func (s *FavoriteService) AddFavorite(principal models.User, recipeID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRow("SELECT id FROM recipes WHERE id = ?", recipeID).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrRecipeNotFound
	}
	if err != nil {
		return err
	}

	err = tx.QueryRow("SELECT id FROM favorites WHERE user_id = ? AND recipe_id = ?", principal.ID, recipeID).Scan(&exists)
	if err == nil {
		return ErrAlreadyFavorite
	}
	if err != sql.ErrNoRows {
		return err
	}

	if _, err := tx.Exec("INSERT INTO favorites(user_id, recipe_id) VALUES(?, ?)", principal.ID, recipeID); err != nil {
		return err
	}
	return tx.Commit()
}

// RemoveFavorite deletes the principal's favorite for a recipe. The
// favorite is looked up by (principal, recipe) and still routed through
// the ownership guard before the delete.
func (s *FavoriteService) RemoveFavorite(principal models.User, recipeID int64) error {
	var fav models.Favorite
	row := s.db.QueryRow("SELECT id, user_id, recipe_id FROM favorites WHERE user_id = ? AND recipe_id = ?", principal.ID, recipeID)
	if err := row.Scan(&fav.ID, &fav.UserID, &fav.RecipeID); err != nil {
		if err == sql.ErrNoRows {
			return ErrFavoriteNotFound
		}
		return err
	}

	if err := auth.AuthorizeMutation(principal, &fav.UserID); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM favorites WHERE id = ?", fav.ID)
	return err
}

// GetFavorites retrieves the recipes the principal has favorited.
func (s *FavoriteService) GetFavorites(principal models.User) ([]models.Recipe, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.title, r.ingredients_json, r.steps, r.image_url, r.created_by, r.created_at
		FROM recipes r
		JOIN favorites f ON r.id = f.recipe_id
		WHERE f.user_id = ?
		ORDER BY f.id`, principal.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].IsFavourite = true
	}
	return recipes, nil
}
