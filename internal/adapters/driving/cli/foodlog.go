package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

var (
	logDate    string
	logMeal    string
	logTitle   string
	logRecipe  string
	logKcal    float64
	logProtein float64
	logFat     float64
	logCarbs   float64
	logJSON    bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Track what you eat",
}

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an eaten meal",
	Long: `Records a meal in the food log. The date defaults to today.

Meal types: breakfast, lunch, dinner, snack.`,
	RunE: runLogAdd,
}

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's meals, totals and remaining budget",
	RunE:  runLogShow,
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a food log entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogDelete,
}

func init() {
	logAddCmd.Flags().StringVar(&logDate, "date", "", "log date YYYY-MM-DD (default today)")
	logAddCmd.Flags().StringVar(&logMeal, "meal", "", "meal type")
	logAddCmd.Flags().StringVar(&logTitle, "title", "", "what was eaten")
	logAddCmd.Flags().StringVar(&logRecipe, "recipe", "", "recipe id, when eaten from the collection")
	logAddCmd.Flags().Float64Var(&logKcal, "kcal", 0, "calories in kcal")
	logAddCmd.Flags().Float64Var(&logProtein, "protein", 0, "protein in grams")
	logAddCmd.Flags().Float64Var(&logFat, "fat", 0, "fat in grams")
	logAddCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "carbohydrate in grams")
	_ = logAddCmd.MarkFlagRequired("meal")
	_ = logAddCmd.MarkFlagRequired("title")

	logShowCmd.Flags().StringVar(&logDate, "date", "", "log date YYYY-MM-DD (default today)")
	logShowCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON")

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logShowCmd)
	logCmd.AddCommand(logDeleteCmd)
	rootCmd.AddCommand(logCmd)
}

func defaultDate(date string) string {
	if date == "" {
		return time.Now().Format("2006-01-02")
	}
	return date
}

func runLogAdd(cmd *cobra.Command, _ []string) error {
	diet, err := getDietService()
	if err != nil {
		return err
	}

	entry := domain.FoodLogEntry{
		LogDate:     defaultDate(logDate),
		MealType:    domain.MealType(logMeal),
		RecipeID:    logRecipe,
		RecipeTitle: logTitle,
		Nutrition: domain.Nutrition{
			CaloriesKcal: logKcal,
			ProteinG:     logProtein,
			FatG:         logFat,
			CarbsG:       logCarbs,
		},
	}

	id, err := diet.AddFood(context.Background(), entry)
	if err != nil {
		return fmt.Errorf("adding log entry: %w", err)
	}

	cmd.Printf("Logged #%d: %s (%s, %.0f kcal)\n", id, entry.RecipeTitle, entry.MealType, entry.Nutrition.CaloriesKcal)
	return nil
}

func runLogShow(cmd *cobra.Command, _ []string) error {
	diet, err := getDietService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	date := defaultDate(logDate)

	entries, err := diet.DailyLog(ctx, date)
	if err != nil {
		return fmt.Errorf("listing log: %w", err)
	}
	totals, err := diet.DailyTotals(ctx, date)
	if err != nil {
		return fmt.Errorf("summing log: %w", err)
	}

	if logJSON {
		data, err := json.MarshalIndent(map[string]any{
			"date":    date,
			"entries": entries,
			"totals":  totals,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling log: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		cmd.Printf("No meals logged on %s.\n", date)
		return nil
	}

	cmd.Printf("Meals on %s:\n", date)
	for _, e := range entries {
		cmd.Printf("  #%d %s %s: %.0f kcal (P %.1fg / F %.1fg / C %.1fg)\n",
			e.ID, e.MealType.Label(), e.RecipeTitle, e.Nutrition.CaloriesKcal,
			e.Nutrition.ProteinG, e.Nutrition.FatG, e.Nutrition.CarbsG)
	}
	cmd.Printf("Total: %.0f kcal (P %.1fg / F %.1fg / C %.1fg)\n",
		totals.CaloriesKcal, totals.ProteinG, totals.FatG, totals.CarbsG)

	// Remaining budget shows only when a profile exists.
	targets, err := diet.Targets(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoProfile) {
			return nil
		}
		return fmt.Errorf("calculating targets: %w", err)
	}
	cmd.Printf("Remaining today: %.0f kcal of %.0f kcal target\n",
		targets.TargetKcal-totals.CaloriesKcal, targets.TargetKcal)
	return nil
}

func runLogDelete(cmd *cobra.Command, args []string) error {
	diet, err := getDietService()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parsing entry id %q: %w", args[0], err)
	}

	if err := diet.DeleteFood(context.Background(), id); err != nil {
		return fmt.Errorf("deleting entry %d: %w", id, err)
	}
	cmd.Printf("Deleted entry #%d\n", id)
	return nil
}
