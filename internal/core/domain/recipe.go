package domain

// MealType identifies which meal of the day a recipe or log entry belongs to.
type MealType string

// Available meal types.
const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes lists every meal type in daily order.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// IsValid returns true if the meal type is recognised.
func (m MealType) IsValid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m MealType) String() string {
	return string(m)
}

// Label returns the Japanese display label used in answers and plans.
func (m MealType) Label() string {
	switch m {
	case MealBreakfast:
		return "朝食"
	case MealLunch:
		return "昼食"
	case MealDinner:
		return "夕食"
	case MealSnack:
		return "間食"
	default:
		return string(m)
	}
}

// Nutrition holds the calorie and macronutrient values of one serving.
// All values are per serving and never negative.
type Nutrition struct {
	// CaloriesKcal is the energy in kilocalories.
	CaloriesKcal float64

	// ProteinG is protein in grams.
	ProteinG float64

	// FatG is fat in grams.
	FatG float64

	// CarbsG is carbohydrate in grams.
	CarbsG float64
}

// Add returns the element-wise sum of two nutrition values.
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Nutrition{
		CaloriesKcal: n.CaloriesKcal + other.CaloriesKcal,
		ProteinG:     n.ProteinG + other.ProteinG,
		FatG:         n.FatG + other.FatG,
		CarbsG:       n.CarbsG + other.CarbsG,
	}
}

// RecipeRecord is a recipe as provided by the corpus.
// Records are owned by the caller and immutable once passed to the core.
type RecipeRecord struct {
	// ID is the unique identifier for the recipe.
	ID string

	// Title is the human-readable recipe name.
	Title string

	// MealType is the meal slot this recipe is intended for.
	MealType MealType

	// Body is the free-form recipe text. It may contain a 【材料】
	// (ingredients) line used by the shopping list generator.
	Body string

	// Tags are free-form labels such as 高たんぱく or 低糖質.
	Tags []string

	// Nutrition holds the per-serving calorie and PFC values.
	Nutrition Nutrition
}
