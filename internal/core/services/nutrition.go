package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

// Daily intake never drops below these floors, regardless of the
// configured deficit.
var calorieSafetyFloor = map[domain.Sex]float64{
	domain.SexMale:   1500,
	domain.SexFemale: 1200,
}

// proteinPerKg is the daily protein target in grams per kilogram of
// body weight.
const proteinPerKg = 1.6

// fatKcalShare is the fraction of the calorie target taken by fat.
const fatKcalShare = 0.25

// CalcBMR computes the basal metabolic rate with the Mifflin-St Jeor
// equation.
func CalcBMR(weightKg, heightCm float64, age int, sex domain.Sex) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == domain.SexMale {
		return base + 5
	}
	return base - 161
}

// CalcTDEE derives the daily energy and PFC targets for a profile.
// The intake target is TDEE minus the deficit, clamped to the per-sex
// safety floor. Protein is weight-based, fat is a fixed share of the
// target, carbohydrate takes the remaining calories.
func CalcTDEE(profile domain.UserProfile) domain.TDEEResult {
	bmr := CalcBMR(profile.WeightKg, profile.HeightCm, profile.Age, profile.Sex)
	tdee := bmr * profile.ActivityLevel.Factor()

	floor, ok := calorieSafetyFloor[profile.Sex]
	if !ok {
		floor = 1200
	}
	target := math.Max(floor, tdee-float64(profile.CalorieDeficit))

	protein := round1(proteinPerKg * profile.WeightKg)
	fat := round1(target * fatKcalShare / 9)
	carbs := round1(math.Max(0, (target-protein*4-fat*9)/4))

	return domain.TDEEResult{
		BMRKcal:        round1(bmr),
		TDEEKcal:       round1(tdee),
		TargetKcal:     round1(target),
		DeficitKcal:    profile.CalorieDeficit,
		ProteinTargetG: protein,
		FatTargetG:     fat,
		CarbsTargetG:   carbs,
	}
}

// FormatProfileContext renders the profile and its targets as the
// context string embedded in the answer prompt.
func FormatProfileContext(profile domain.UserProfile, result domain.TDEEResult) string {
	return fmt.Sprintf(
		"%s・%d歳・身長%.1fcm・体重%.1fkg・目標体重%.1fkg。"+
			"1日の目標摂取カロリー: %.0fkcal （TDEE %.0fkcal - %dkcal赤字）。"+
			"PFC目標: たんぱく質%.1fg / 脂質%.1fg / 炭水化物%.1fg。",
		profile.Sex.Label(), profile.Age, profile.HeightCm, profile.WeightKg,
		profile.GoalWeightKg, result.TargetKcal, result.TDEEKcal,
		result.DeficitKcal, result.ProteinTargetG, result.FatTargetG,
		result.CarbsTargetG,
	)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
