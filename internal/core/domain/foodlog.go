package domain

import "time"

// FoodLogEntry records one eaten meal on a given date.
type FoodLogEntry struct {
	// ID is the log row identifier, assigned by the store.
	ID int64 `json:"id"`

	// LogDate is the day the meal was eaten, formatted 2006-01-02.
	LogDate string `json:"log_date"`

	// MealType is the meal slot.
	MealType MealType `json:"meal_type"`

	// RecipeID is the source recipe, empty for free-form entries.
	RecipeID string `json:"recipe_id,omitempty"`

	// RecipeTitle is the display name of what was eaten.
	RecipeTitle string `json:"recipe_title"`

	// Nutrition holds the logged calorie and PFC values.
	Nutrition Nutrition `json:"nutrition"`

	// CreatedAt is when the entry was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// Validate reports whether the entry values are usable.
func (e FoodLogEntry) Validate() error {
	if e.LogDate == "" || e.RecipeTitle == "" {
		return ErrInvalidInput
	}
	if !e.MealType.IsValid() {
		return ErrInvalidInput
	}
	if e.Nutrition.CaloriesKcal < 0 {
		return ErrInvalidInput
	}
	return nil
}
