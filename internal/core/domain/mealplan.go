package domain

// MealBudgetShare is the fraction of the daily calorie target assigned
// to each meal slot by the planner.
var MealBudgetShare = map[MealType]float64{
	MealBreakfast: 0.25,
	MealLunch:     0.35,
	MealDinner:    0.30,
	MealSnack:     0.10,
}

// MealPlanSlot is the planner's pick for one meal slot.
type MealPlanSlot struct {
	// MealType is the slot this pick fills.
	MealType MealType `json:"meal_type"`

	// BudgetKcal is the calorie budget for the slot.
	BudgetKcal float64 `json:"budget_kcal"`

	// Recipe is the selected recipe, nil when no recipe fits.
	Recipe *RecipeRecord `json:"recipe,omitempty"`
}

// MealPlan is a day's worth of planner picks, in daily meal order.
type MealPlan struct {
	// TargetKcal is the daily calorie target the plan was built for.
	TargetKcal float64 `json:"target_kcal"`

	// Slots holds one pick per requested meal type.
	Slots []MealPlanSlot `json:"slots"`
}

// IngredientMatch is a recipe ranked by how many of the searched
// ingredients appear in its text or tags.
type IngredientMatch struct {
	// Recipe is the matching recipe.
	Recipe RecipeRecord `json:"recipe"`

	// Hits is the number of searched ingredients found.
	Hits int `json:"hits"`
}

// ShoppingCategory groups shopping list items under a display heading.
type ShoppingCategory struct {
	// Name is the category heading.
	Name string `json:"name"`

	// Items are the deduplicated ingredient names.
	Items []string `json:"items"`
}
