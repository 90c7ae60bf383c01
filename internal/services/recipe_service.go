package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/models"
)

// RecipeUpdate carries a partial recipe update; nil fields are left
// untouched.
type RecipeUpdate struct {
	Title       *string
	Ingredients *[]string
	Steps       *string
	ImageURL    *string
}

// RecipeServiceProvider defines the interface for recipe services.
type RecipeServiceProvider interface {
	CreateRecipe(owner models.User, recipe models.Recipe) (models.Recipe, error)
	GetRecipeByID(id int64) (models.Recipe, error)
	ListRecipes(page, pageSize int) ([]models.Recipe, int, error)
	SearchRecipes(query string, page, pageSize int) ([]models.Recipe, int, error)
	UpdateRecipe(principal models.User, id int64, upd RecipeUpdate) (models.Recipe, error)
	DeleteRecipe(principal models.User, id int64) error
	SaveSuggested(owner models.User, recipe models.Recipe) (models.Recipe, error)
}

// RecipeService provides business logic for the recipe catalog.
type RecipeService struct {
	db *sql.DB
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(db *sql.DB) *RecipeService {
	return &RecipeService{db: db}
}

// scanRecipe is a helper to scan a recipe from a row or rows object.
func scanRecipe(scanner interface{ Scan(...interface{}) error }) (models.Recipe, error) {
	var recipe models.Recipe
	var imageURL sql.NullString
	var createdBy sql.NullInt64

	err := scanner.Scan(
		&recipe.ID, &recipe.Title, &recipe.IngredientsJSON, &recipe.Steps,
		&imageURL, &createdBy, &recipe.CreatedAt,
	)
	if err != nil {
		return recipe, err
	}

	recipe.ImageURL = imageURL.String
	if createdBy.Valid {
		owner := createdBy.Int64
		recipe.CreatedBy = &owner
	}

	recipe.PrepareForAPI()
	return recipe, nil
}

const recipeColumns = "id, title, ingredients_json, steps, image_url, created_by, created_at"

// CreateRecipe adds a new recipe owned by the given user.
func (s *RecipeService) CreateRecipe(owner models.User, recipe models.Recipe) (models.Recipe, error) {
	recipe.PrepareForSave()

	stmt, err := s.db.Prepare("INSERT INTO recipes(title, ingredients_json, steps, image_url, created_by) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Recipe{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(recipe.Title, recipe.IngredientsJSON, recipe.Steps, nullString(recipe.ImageURL), owner.ID)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("failed to create recipe: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Recipe{}, err
	}
	return s.GetRecipeByID(id)
}

// GetRecipeByID retrieves a single recipe by its ID.
func (s *RecipeService) GetRecipeByID(id int64) (models.Recipe, error) {
	row := s.db.QueryRow("SELECT "+recipeColumns+" FROM recipes WHERE id = ?", id)
	recipe, err := scanRecipe(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Recipe{}, ErrRecipeNotFound
		}
		return models.Recipe{}, err
	}
	return recipe, nil
}

// ListRecipes retrieves one page of recipes plus the total count.
func (s *RecipeService) ListRecipes(page, pageSize int) ([]models.Recipe, int, error) {
	offset := (page - 1) * pageSize

	rows, err := s.db.Query("SELECT "+recipeColumns+" FROM recipes ORDER BY id LIMIT ? OFFSET ?", pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM recipes").Scan(&total); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// SearchRecipes retrieves one page of recipes whose title contains the
// query, case-insensitively, plus the total match count.
func (s *RecipeService) SearchRecipes(query string, page, pageSize int) ([]models.Recipe, int, error) {
	offset := (page - 1) * pageSize
	pattern := "%" + escapeLike(query) + "%"

	rows, err := s.db.Query(
		"SELECT "+recipeColumns+" FROM recipes WHERE title LIKE ? ESCAPE '\\' ORDER BY id LIMIT ? OFFSET ?",
		pattern, pageSize, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM recipes WHERE title LIKE ? ESCAPE '\\'", pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// UpdateRecipe applies a partial update to a recipe the principal owns.
// The ownership guard runs before any write; a seeded recipe (nil
// owner) is denied for every principal.
func (s *RecipeService) UpdateRecipe(principal models.User, id int64, upd RecipeUpdate) (models.Recipe, error) {
	recipe, err := s.GetRecipeByID(id)
	if err != nil {
		return models.Recipe{}, err
	}

	if err := auth.AuthorizeMutation(principal, recipe.CreatedBy); err != nil {
		return models.Recipe{}, err
	}

	if upd.Title != nil {
		recipe.Title = *upd.Title
	}
	if upd.Ingredients != nil {
		recipe.Ingredients = *upd.Ingredients
	}
	if upd.Steps != nil {
		recipe.Steps = *upd.Steps
	}
	if upd.ImageURL != nil {
		recipe.ImageURL = *upd.ImageURL
	}
	recipe.PrepareForSave()

	stmt, err := s.db.Prepare("UPDATE recipes SET title = ?, ingredients_json = ?, steps = ?, image_url = ? WHERE id = ?")
	if err != nil {
		return models.Recipe{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(recipe.Title, recipe.IngredientsJSON, recipe.Steps, nullString(recipe.ImageURL), id); err != nil {
		return models.Recipe{}, err
	}
	return s.GetRecipeByID(id)
}

// DeleteRecipe removes a recipe the principal owns. Favorites referring
// to it cascade away at the database level.
func (s *RecipeService) DeleteRecipe(principal models.User, id int64) error {
	recipe, err := s.GetRecipeByID(id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeMutation(principal, recipe.CreatedBy); err != nil {
		return err
	}

	_, err = s.db.Exec("DELETE FROM recipes WHERE id = ?", id)
	return err
}

// SaveSuggested persists an AI-suggested recipe under the given owner.
// The title-dedupe check and the insert run in one transaction.
func (s *RecipeService) SaveSuggested(owner models.User, recipe models.Recipe) (models.Recipe, error) {
	recipe.PrepareForSave()

	tx, err := s.db.Begin()
	if err != nil {
		return models.Recipe{}, err
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRow("SELECT id FROM recipes WHERE title = ?", recipe.Title).Scan(&existing)
	if err == nil {
		return models.Recipe{}, ErrDuplicateRecipe
	}
	if err != sql.ErrNoRows {
		return models.Recipe{}, err
	}

	res, err := tx.Exec(
		"INSERT INTO recipes(title, ingredients_json, steps, image_url, created_by) VALUES(?, ?, ?, ?, ?)",
		recipe.Title, recipe.IngredientsJSON, recipe.Steps, nullString(recipe.ImageURL), owner.ID,
	)
	if err != nil {
		return models.Recipe{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Recipe{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Recipe{}, err
	}
	return s.GetRecipeByID(id)
}

func collectRecipes(rows *sql.Rows) ([]models.Recipe, error) {
	var recipes []models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// nullString maps the empty string to NULL for nullable text columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// escapeLike escapes LIKE metacharacters in a user-supplied query.
func escapeLike(q string) string {
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, "%", `\%`)
	q = strings.ReplaceAll(q, "_", `\_`)
	return q
}
