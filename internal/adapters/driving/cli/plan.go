package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

var (
	planKcal  float64
	planMeals []string
	planJSON  bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Suggest a day of meals within your calorie target",
	Long: `Picks one recipe per meal slot from the built-in collection so the
day lands close to your calorie target. The target comes from your
profile unless --kcal overrides it.`,
	RunE: runPlan,
}

var planShoppingCmd = &cobra.Command{
	Use:   "shopping",
	Short: "Build a categorised shopping list from the recipe collection",
	RunE:  runPlanShopping,
}

var planFindCmd = &cobra.Command{
	Use:   "find [ingredient,...]",
	Short: "Find recipes using the ingredients you have",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanFind,
}

func init() {
	planCmd.Flags().Float64Var(&planKcal, "kcal", 0, "daily calorie target (0 = from profile)")
	planCmd.Flags().StringSliceVar(&planMeals, "meals", nil, "meal slots to fill (default all)")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "output as JSON")

	planCmd.AddCommand(planShoppingCmd)
	planCmd.AddCommand(planFindCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	planner, err := getPlannerService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	target := planKcal
	if target <= 0 {
		diet, err := getDietService()
		if err != nil {
			return err
		}
		targets, err := diet.Targets(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				return errors.New("no profile saved; set one with \"dietcoach profile set\" or pass --kcal")
			}
			return fmt.Errorf("calculating targets: %w", err)
		}
		target = targets.TargetKcal
	}

	var mealTypes []domain.MealType
	for _, m := range planMeals {
		mealType := domain.MealType(strings.TrimSpace(m))
		if !mealType.IsValid() {
			return fmt.Errorf("unknown meal type %q", m)
		}
		mealTypes = append(mealTypes, mealType)
	}

	plan, err := planner.SuggestPlan(ctx, target, mealTypes)
	if err != nil {
		return fmt.Errorf("building plan: %w", err)
	}

	if planJSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling plan: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Plan for %.0f kcal:\n", plan.TargetKcal)
	var total float64
	for _, slot := range plan.Slots {
		if slot.Recipe == nil {
			cmd.Printf("  %s (%.0f kcal budget): no recipe fits\n", slot.MealType.Label(), slot.BudgetKcal)
			continue
		}
		total += slot.Recipe.Nutrition.CaloriesKcal
		cmd.Printf("  %s (%.0f kcal budget): %s, %.0f kcal (P %.1fg / F %.1fg / C %.1fg)\n",
			slot.MealType.Label(), slot.BudgetKcal, slot.Recipe.Title,
			slot.Recipe.Nutrition.CaloriesKcal, slot.Recipe.Nutrition.ProteinG,
			slot.Recipe.Nutrition.FatG, slot.Recipe.Nutrition.CarbsG)
	}
	cmd.Printf("Planned total: %.0f kcal\n", total)
	return nil
}

func runPlanShopping(cmd *cobra.Command, _ []string) error {
	planner, err := getPlannerService()
	if err != nil {
		return err
	}

	categories, err := planner.ShoppingList(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("building shopping list: %w", err)
	}

	for _, category := range categories {
		cmd.Printf("%s:\n", category.Name)
		for _, item := range category.Items {
			cmd.Printf("  - %s\n", item)
		}
	}
	return nil
}

func runPlanFind(cmd *cobra.Command, args []string) error {
	planner, err := getPlannerService()
	if err != nil {
		return err
	}

	ingredients := strings.Split(strings.ReplaceAll(args[0], "、", ","), ",")
	matches, err := planner.FindByIngredients(context.Background(), ingredients)
	if err != nil {
		return fmt.Errorf("finding recipes: %w", err)
	}

	if len(matches) == 0 {
		cmd.Println("No recipes use those ingredients.")
		return nil
	}

	for _, m := range matches {
		cmd.Printf("  %s (%d ingredient match, %.0f kcal)\n",
			m.Recipe.Title, m.Hits, m.Recipe.Nutrition.CaloriesKcal)
	}
	return nil
}
