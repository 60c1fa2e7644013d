package domain

import "time"

// Sex is the biological sex used by the BMR formula.
type Sex string

// Available sexes.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// IsValid returns true if the sex is recognised.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// String returns the string representation.
func (s Sex) String() string {
	return string(s)
}

// Label returns the Japanese display label.
func (s Sex) Label() string {
	if s == SexMale {
		return "男性"
	}
	return "女性"
}

// ActivityLevel describes habitual physical activity for the TDEE multiplier.
type ActivityLevel string

// Available activity levels.
const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// AllActivityLevels lists every activity level from least to most active.
var AllActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

// IsValid returns true if the activity level is recognised.
func (a ActivityLevel) IsValid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	default:
		return false
	}
}

// Factor returns the TDEE multiplier for this activity level.
// Unrecognised levels fall back to the light-activity multiplier.
func (a ActivityLevel) Factor() float64 {
	switch a {
	case ActivitySedentary:
		return 1.2
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	default:
		return 1.375
	}
}

// String returns the string representation.
func (a ActivityLevel) String() string {
	return string(a)
}

// Label returns the Japanese display label.
func (a ActivityLevel) Label() string {
	switch a {
	case ActivitySedentary:
		return "座り仕事メイン（ほぼ運動なし）"
	case ActivityLight:
		return "軽い運動（週1〜3日）"
	case ActivityModerate:
		return "中程度の運動（週3〜5日）"
	case ActivityActive:
		return "ハードな運動（週6〜7日）"
	case ActivityVeryActive:
		return "肉体労働 / 1日2回トレーニング"
	default:
		return string(a)
	}
}

// UserProfile is the single diet profile the tool tracks.
type UserProfile struct {
	// Age in years.
	Age int `json:"age"`

	// Sex is used by the BMR formula.
	Sex Sex `json:"sex"`

	// HeightCm is body height in centimetres.
	HeightCm float64 `json:"height_cm"`

	// WeightKg is current body weight in kilograms.
	WeightKg float64 `json:"weight_kg"`

	// GoalWeightKg is the target body weight in kilograms.
	GoalWeightKg float64 `json:"goal_weight_kg"`

	// ActivityLevel is habitual physical activity.
	ActivityLevel ActivityLevel `json:"activity_level"`

	// CalorieDeficit is the daily deficit below TDEE, in kilocalories.
	CalorieDeficit int `json:"calorie_deficit"`

	// UpdatedAt is when the profile was last saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate reports whether the profile values are usable.
func (p UserProfile) Validate() error {
	if p.Age <= 0 || p.HeightCm <= 0 || p.WeightKg <= 0 || p.GoalWeightKg <= 0 {
		return ErrInvalidInput
	}
	if !p.Sex.IsValid() || !p.ActivityLevel.IsValid() {
		return ErrInvalidInput
	}
	if p.CalorieDeficit < 0 {
		return ErrInvalidInput
	}
	return nil
}

// TDEEResult holds the derived daily energy and macronutrient targets.
type TDEEResult struct {
	// BMRKcal is the basal metabolic rate.
	BMRKcal float64 `json:"bmr_kcal"`

	// TDEEKcal is the total daily energy expenditure.
	TDEEKcal float64 `json:"tdee_kcal"`

	// TargetKcal is the daily intake target after the deficit,
	// clamped to the per-sex safety floor.
	TargetKcal float64 `json:"target_kcal"`

	// DeficitKcal is the applied daily deficit.
	DeficitKcal int `json:"deficit_kcal"`

	// ProteinTargetG is the daily protein target in grams.
	ProteinTargetG float64 `json:"protein_target_g"`

	// FatTargetG is the daily fat target in grams.
	FatTargetG float64 `json:"fat_target_g"`

	// CarbsTargetG is the daily carbohydrate target in grams.
	CarbsTargetG float64 `json:"carbs_target_g"`
}
