package models

import (
	"encoding/json"
	"time"
)

// Recipe represents a recipe in the catalog. A nil CreatedBy marks a
// system-seeded recipe with no owner; such a recipe can never be mutated
// through the API.
type Recipe struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Ingredients []string  `json:"ingredients"`
	Steps       string    `json:"steps"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedBy   *int64    `json:"created_by"`
	IsFavourite bool      `json:"is_favourite"`
	CreatedAt   time.Time `json:"createdAt"`

	// Ingredients are stored as a JSON text column.
	IngredientsJSON string `json:"-"`
}

// PrepareForSave serializes the ingredient list into its storage column.
func (r *Recipe) PrepareForSave() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	data, err := json.Marshal(r.Ingredients)
	if err != nil {
		r.IngredientsJSON = "[]"
		return
	}
	r.IngredientsJSON = string(data)
}

// PrepareForAPI deserializes the storage column back into the ingredient list.
func (r *Recipe) PrepareForAPI() {
	r.Ingredients = []string{}
	if r.IngredientsJSON == "" {
		return
	}
	_ = json.Unmarshal([]byte(r.IngredientsJSON), &r.Ingredients)
}
