package models

import "time"

// Favorite links a user to a recipe they saved. Rows cascade away when
// either the user or the recipe is deleted.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	RecipeID  int64     `json:"recipe_id"`
	CreatedAt time.Time `json:"createdAt"`
}
