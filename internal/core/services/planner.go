package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dietcoach-cli/internal/logger"
)

// Ensure PlannerService implements the interface.
var _ driving.PlannerService = (*PlannerService)(nil)

// budgetSlack lets a recipe exceed a slot's budget by up to 20%.
const budgetSlack = 1.2

// ingredientsMarker delimits the ingredients section of a recipe body.
const ingredientsMarker = "【材料】"

// shoppingCategories maps a category heading to the ingredient keywords
// that file an item under it, in display order. Unmatched items fall
// through to その他.
var shoppingCategories = []struct {
	name     string
	keywords []string
}{
	{"肉・魚", []string{"鶏", "豚", "牛", "鮭", "サバ", "たら", "あさり", "魚"}},
	{"大豆・卵・乳製品", []string{"豆腐", "卵", "納豆", "大豆", "チーズ", "ヨーグルト", "牛乳"}},
	{"野菜", []string{
		"もやし", "ほうれん草", "ブロッコリー", "キャベツ", "玉ねぎ", "大根",
		"ズッキーニ", "パプリカ", "トマト", "きゅうり", "春菊", "きのこ",
		"えのき", "しめじ", "舞茸", "わかめ",
	}},
	{"穀物・麺", []string{"玄米", "白米", "オートミール", "豆腐麺", "全粒粉", "キヌア"}},
	{"調味料・缶詰", []string{
		"ポン酢", "醤油", "みりん", "塩麹", "味噌", "ごま油",
		"オリーブオイル", "酢", "サバ缶", "トマト缶",
	}},
}

// otherCategory collects ingredients no keyword matched.
const otherCategory = "その他"

// PlannerService builds meal plans and shopping lists over the corpus.
type PlannerService struct {
	recipes driven.RecipeSource
}

// NewPlannerService creates a new planner service.
func NewPlannerService(recipes driven.RecipeSource) *PlannerService {
	return &PlannerService{recipes: recipes}
}

// SuggestPlan picks, for each requested meal slot, the recipe whose
// calories are closest to the slot's share of the daily target.
// Candidates are recipes of the matching meal type within 120% of the
// budget; when none qualify, any recipe within budget is considered.
func (s *PlannerService) SuggestPlan(
	ctx context.Context, targetKcal float64, mealTypes []domain.MealType,
) (domain.MealPlan, error) {
	if targetKcal <= 0 {
		return domain.MealPlan{}, fmt.Errorf("suggesting plan: %w", domain.ErrInvalidInput)
	}
	if len(mealTypes) == 0 {
		mealTypes = domain.AllMealTypes
	}

	records, err := s.recipes.Load(ctx)
	if err != nil {
		return domain.MealPlan{}, fmt.Errorf("loading recipes: %w", err)
	}

	plan := domain.MealPlan{TargetKcal: targetKcal}
	for _, mealType := range mealTypes {
		share, ok := domain.MealBudgetShare[mealType]
		if !ok {
			share = 0.25
		}
		budget := targetKcal * share

		candidates := filterRecipes(records, func(r domain.RecipeRecord) bool {
			return r.MealType == mealType && r.Nutrition.CaloriesKcal <= budget*budgetSlack
		})
		if len(candidates) == 0 {
			candidates = filterRecipes(records, func(r domain.RecipeRecord) bool {
				return r.Nutrition.CaloriesKcal <= budget*budgetSlack
			})
		}

		slot := domain.MealPlanSlot{MealType: mealType, BudgetKcal: budget}
		if best := closestToBudget(candidates, budget); best != nil {
			slot.Recipe = best
		} else {
			logger.Debug("No recipe fits %s budget %.0f kcal", mealType, budget)
		}
		plan.Slots = append(plan.Slots, slot)
	}
	return plan, nil
}

// FindByIngredients ranks recipes by how many of the given ingredients
// appear in their body text or tags. Recipes with no hits are omitted.
func (s *PlannerService) FindByIngredients(
	ctx context.Context, ingredients []string,
) ([]domain.IngredientMatch, error) {
	records, err := s.recipes.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}

	var matches []domain.IngredientMatch
	for _, r := range records {
		text := r.Body + " " + strings.Join(r.Tags, " ")
		hits := 0
		for _, ing := range ingredients {
			ing = strings.TrimSpace(ing)
			if ing != "" && strings.Contains(text, ing) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, domain.IngredientMatch{Recipe: r, Hits: hits})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Hits > matches[j].Hits
	})
	return matches, nil
}

// ShoppingList extracts the 【材料】 line of each recipe and groups the
// deduplicated items into display categories. Empty categories are
// omitted.
func (s *PlannerService) ShoppingList(
	ctx context.Context, recipes []domain.RecipeRecord,
) ([]domain.ShoppingCategory, error) {
	if len(recipes) == 0 {
		records, err := s.recipes.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading recipes: %w", err)
		}
		recipes = records
	}

	var ingredients []string
	seen := map[string]bool{}
	for _, r := range recipes {
		for _, item := range parseIngredients(r.Body) {
			if !seen[item] {
				seen[item] = true
				ingredients = append(ingredients, item)
			}
		}
	}

	grouped := make(map[string][]string)
	for _, ing := range ingredients {
		grouped[categoryFor(ing)] = append(grouped[categoryFor(ing)], ing)
	}

	var out []domain.ShoppingCategory
	for _, cat := range shoppingCategories {
		if items := grouped[cat.name]; len(items) > 0 {
			out = append(out, domain.ShoppingCategory{Name: cat.name, Items: items})
		}
	}
	if items := grouped[otherCategory]; len(items) > 0 {
		out = append(out, domain.ShoppingCategory{Name: otherCategory, Items: items})
	}
	return out, nil
}

// parseIngredients pulls the comma-separated items off the first
// 【材料】 line of a recipe body.
func parseIngredients(body string) []string {
	for _, line := range strings.Split(body, "\n") {
		if !strings.Contains(line, ingredientsMarker) {
			continue
		}
		section := strings.ReplaceAll(line, ingredientsMarker, "")
		section = strings.ReplaceAll(section, "、", ",")
		var items []string
		for _, item := range strings.Split(section, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	return nil
}

// categoryFor returns the heading the ingredient is filed under.
func categoryFor(ingredient string) string {
	for _, cat := range shoppingCategories {
		for _, keyword := range cat.keywords {
			if strings.Contains(ingredient, keyword) {
				return cat.name
			}
		}
	}
	return otherCategory
}

func filterRecipes(records []domain.RecipeRecord, keep func(domain.RecipeRecord) bool) []domain.RecipeRecord {
	var out []domain.RecipeRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// closestToBudget returns a copy of the candidate nearest the budget.
func closestToBudget(candidates []domain.RecipeRecord, budget float64) *domain.RecipeRecord {
	var best *domain.RecipeRecord
	bestDiff := math.Inf(1)
	for i := range candidates {
		diff := math.Abs(candidates[i].Nutrition.CaloriesKcal - budget)
		if diff < bestDiff {
			bestDiff = diff
			best = &candidates[i]
		}
	}
	if best == nil {
		return nil
	}
	picked := *best
	return &picked
}
