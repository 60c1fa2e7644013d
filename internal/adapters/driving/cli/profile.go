package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

var (
	profileAge      int
	profileSex      string
	profileHeight   float64
	profileWeight   float64
	profileGoal     float64
	profileActivity string
	profileDeficit  int
	profileJSON     bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your diet profile",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save your profile for calorie and PFC targets",
	Long: `Saves your profile. The daily calorie target is total energy
expenditure minus the deficit, never below a per-sex safety floor.

Activity levels: sedentary, light, moderate, active, very_active.`,
	RunE: runProfileSet,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and daily targets",
	RunE:  runProfileShow,
}

func init() {
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "age in years")
	profileSetCmd.Flags().StringVar(&profileSex, "sex", "", "male or female")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "current weight in kg")
	profileSetCmd.Flags().Float64Var(&profileGoal, "goal-weight", 0, "goal weight in kg")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "light", "habitual activity level")
	profileSetCmd.Flags().IntVar(&profileDeficit, "deficit", 300, "daily calorie deficit in kcal")
	for _, name := range []string{"age", "sex", "height", "weight", "goal-weight"} {
		_ = profileSetCmd.MarkFlagRequired(name)
	}

	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "output as JSON")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	diet, err := getDietService()
	if err != nil {
		return err
	}

	profile := domain.UserProfile{
		Age:            profileAge,
		Sex:            domain.Sex(profileSex),
		HeightCm:       profileHeight,
		WeightKg:       profileWeight,
		GoalWeightKg:   profileGoal,
		ActivityLevel:  domain.ActivityLevel(profileActivity),
		CalorieDeficit: profileDeficit,
	}

	ctx := context.Background()
	if err := diet.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	targets, err := diet.Targets(ctx)
	if err != nil {
		return fmt.Errorf("calculating targets: %w", err)
	}

	cmd.Println("Profile saved.")
	printTargets(cmd, targets)
	return nil
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	diet, err := getDietService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	profile, err := diet.Profile(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoProfile) {
			cmd.Println("No profile saved. Run \"dietcoach profile set\" first.")
			return nil
		}
		return fmt.Errorf("reading profile: %w", err)
	}

	targets, err := diet.Targets(ctx)
	if err != nil {
		return fmt.Errorf("calculating targets: %w", err)
	}

	if profileJSON {
		data, err := json.MarshalIndent(map[string]any{
			"profile": profile,
			"targets": targets,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling profile: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s, %d years, %.1f cm, %.1f kg (goal %.1f kg)\n",
		profile.Sex, profile.Age, profile.HeightCm, profile.WeightKg, profile.GoalWeightKg)
	cmd.Printf("Activity: %s, deficit: %d kcal/day\n", profile.ActivityLevel, profile.CalorieDeficit)
	printTargets(cmd, targets)
	return nil
}

func printTargets(cmd *cobra.Command, targets *domain.TDEEResult) {
	cmd.Printf("BMR %.0f kcal, TDEE %.0f kcal\n", targets.BMRKcal, targets.TDEEKcal)
	cmd.Printf("Daily target: %.0f kcal (P %.1fg / F %.1fg / C %.1fg)\n",
		targets.TargetKcal, targets.ProteinTargetG, targets.FatTargetG, targets.CarbsTargetG)
}
