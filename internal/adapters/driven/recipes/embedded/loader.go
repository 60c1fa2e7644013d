// Package embedded provides the built-in recipe corpus compiled into
// the binary. The corpus is fixed per release; changing it requires an
// index rebuild.
package embedded

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.RecipeSource = (*Source)(nil)

//go:embed recipes.json
var recipesJSON []byte

// recipeRecord is the on-disk corpus format.
type recipeRecord struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	MealType     string   `json:"meal_type"`
	Tags         []string `json:"tags"`
	CaloriesKcal float64  `json:"calories_kcal"`
	ProteinG     float64  `json:"protein_g"`
	FatG         float64  `json:"fat_g"`
	CarbsG       float64  `json:"carbs_g"`
	Text         string   `json:"text"`
}

// Source loads recipes from the embedded corpus.
type Source struct{}

// New creates a new embedded recipe source.
func New() *Source {
	return &Source{}
}

// Load returns all recipe records, in corpus order.
func (s *Source) Load(context.Context) ([]domain.RecipeRecord, error) {
	var raw []recipeRecord
	if err := json.Unmarshal(recipesJSON, &raw); err != nil {
		return nil, fmt.Errorf("decoding embedded corpus: %w", err)
	}

	records := make([]domain.RecipeRecord, 0, len(raw))
	for _, r := range raw {
		mealType := domain.MealType(r.MealType)
		if r.ID == "" || r.Title == "" || !mealType.IsValid() {
			return nil, fmt.Errorf("embedded corpus entry %q: %w", r.ID, domain.ErrInvalidInput)
		}
		records = append(records, domain.RecipeRecord{
			ID:       r.ID,
			Title:    r.Title,
			MealType: mealType,
			Body:     r.Text,
			Tags:     r.Tags,
			Nutrition: domain.Nutrition{
				CaloriesKcal: r.CaloriesKcal,
				ProteinG:     r.ProteinG,
				FatG:         r.FatG,
				CarbsG:       r.CarbsG,
			},
		})
	}
	return records, nil
}
