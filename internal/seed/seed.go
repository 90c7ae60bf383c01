// Package seed loads the recipe dataset CSV into the catalog as
// ownerless recipes.
package seed

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/myrecipebox/recipebox-be/internal/models"
)

// Run seeds the recipes table from the dataset CSV at csvPath. Seeded
// rows have a NULL owner, so no user can ever mutate them. Seeding is
// idempotent: it no-ops when the table already has rows. All inserts
// happen in one transaction.
func Run(db *sql.DB, csvPath string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM recipes").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int("recipes", count).Msg("Recipes already present, skipping seed")
		return nil
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read dataset header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"Title", "Cleaned_Ingredients", "Instructions", "Image_Name"} {
		if _, ok := col[required]; !ok {
			return fmt.Errorf("dataset is missing the %q column", required)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO recipes(title, ingredients_json, steps, image_url, created_by) VALUES(?, ?, ?, ?, NULL)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	seeded := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read dataset row: %w", err)
		}

		recipe := models.Recipe{
			Title:       row[col["Title"]],
			Ingredients: ParseIngredientList(row[col["Cleaned_Ingredients"]]),
			Steps:       row[col["Instructions"]],
			ImageURL:    path.Join("/images", row[col["Image_Name"]]+".jpg"),
		}
		recipe.PrepareForSave()

		if _, err := stmt.Exec(recipe.Title, recipe.IngredientsJSON, recipe.Steps, recipe.ImageURL); err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", recipe.Title, err)
		}
		seeded++
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info().Int("recipes", seeded).Msg("Database seeded with recipe data")
	return nil
}

// ParseIngredientList converts the dataset's python-list ingredient
// strings, e.g. ['flour', 'salt'], into a slice. Quotes may be single
// or double; embedded commas inside quotes are preserved.
func ParseIngredientList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return []string{}
	}

	var items []string
	var current strings.Builder
	var quote rune
	for _, r := range raw {
		switch {
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && r == ',':
			if item := strings.TrimSpace(current.String()); item != "" {
				items = append(items, item)
			}
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if item := strings.TrimSpace(current.String()); item != "" {
		items = append(items, item)
	}
	if items == nil {
		return []string{}
	}
	return items
}
