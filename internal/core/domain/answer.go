package domain

// Citation points at one retrieved recipe that grounded an answer.
// Nutrition values are copied from the retrieved chunk's metadata
// without recomputation.
type Citation struct {
	// RecipeID is the source recipe identifier.
	RecipeID string `json:"recipe_id"`

	// Title is the recipe title.
	Title string `json:"title"`

	// Snippet is a truncated excerpt of the retrieved chunk.
	Snippet string `json:"snippet"`

	// CaloriesKcal is the recipe's energy in kilocalories.
	CaloriesKcal float64 `json:"calories_kcal"`

	// ProteinG is protein in grams.
	ProteinG float64 `json:"protein_g"`

	// FatG is fat in grams.
	FatG float64 `json:"fat_g"`

	// CarbsG is carbohydrate in grams.
	CarbsG float64 `json:"carbs_g"`
}

// AnswerResult is the outcome of one nutrition question.
// Guard short-circuits produce the same structure as generated
// answers, with the verdict line forced to no-match.
type AnswerResult struct {
	// Answer is the structured answer text following the labelled-line
	// response protocol.
	Answer string `json:"answer"`

	// Sources lists one citation per retrieved chunk, in retrieval order.
	Sources []Citation `json:"sources"`
}
