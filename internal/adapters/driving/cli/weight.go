package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

var (
	weightDate    string
	weightBodyFat float64
	weightLimit   int
	weightJSON    bool
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track your body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add [kg]",
	Short: "Record a weight measurement",
	Long: `Records body weight for a date (default today). Logging the same
date again replaces the earlier measurement.`,
	Args: cobra.ExactArgs(1),
	RunE: runWeightAdd,
}

var weightHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent weight measurements",
	RunE:  runWeightHistory,
}

func init() {
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "measurement date YYYY-MM-DD (default today)")
	weightAddCmd.Flags().Float64Var(&weightBodyFat, "body-fat", 0, "body fat percentage, when measured")

	weightHistoryCmd.Flags().IntVarP(&weightLimit, "limit", "n", 30, "maximum number of measurements")
	weightHistoryCmd.Flags().BoolVar(&weightJSON, "json", false, "output as JSON")

	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightHistoryCmd)
	rootCmd.AddCommand(weightCmd)
}

func runWeightAdd(cmd *cobra.Command, args []string) error {
	diet, err := getDietService()
	if err != nil {
		return err
	}

	kg, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parsing weight %q: %w", args[0], err)
	}

	entry := domain.WeightEntry{
		LogDate:  defaultDate(weightDate),
		WeightKg: kg,
	}
	if cmd.Flags().Changed("body-fat") {
		v := weightBodyFat
		entry.BodyFatPct = &v
	}

	if err := diet.LogWeight(context.Background(), entry); err != nil {
		return fmt.Errorf("logging weight: %w", err)
	}
	cmd.Printf("Logged %.1f kg on %s\n", entry.WeightKg, entry.LogDate)
	return nil
}

func runWeightHistory(cmd *cobra.Command, _ []string) error {
	diet, err := getDietService()
	if err != nil {
		return err
	}

	entries, err := diet.WeightHistory(context.Background(), weightLimit)
	if err != nil {
		return fmt.Errorf("listing weight history: %w", err)
	}

	if weightJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		cmd.Println("No weight measurements yet.")
		return nil
	}

	for i, e := range entries {
		line := fmt.Sprintf("%s  %.1f kg", e.LogDate, e.WeightKg)
		if e.BodyFatPct != nil {
			line += fmt.Sprintf("  (%.1f%% body fat)", *e.BodyFatPct)
		}
		if i > 0 {
			line += fmt.Sprintf("  %+.1f kg", e.WeightKg-entries[i-1].WeightKg)
		}
		cmd.Println(line)
	}
	return nil
}
