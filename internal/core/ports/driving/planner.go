package driving

import (
	"context"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

// PlannerService builds meal plans and shopping lists from the corpus.
type PlannerService interface {
	// SuggestPlan picks the recipe closest to each meal slot's calorie
	// budget. Slots with no candidate stay empty.
	SuggestPlan(ctx context.Context, targetKcal float64, mealTypes []domain.MealType) (domain.MealPlan, error)

	// FindByIngredients ranks recipes by how many of the given
	// ingredients appear in their text or tags.
	FindByIngredients(ctx context.Context, ingredients []string) ([]domain.IngredientMatch, error)

	// ShoppingList extracts and categorises the ingredients of the
	// given recipes. With no recipes given, the whole corpus is used.
	ShoppingList(ctx context.Context, recipes []domain.RecipeRecord) ([]domain.ShoppingCategory, error)
}
