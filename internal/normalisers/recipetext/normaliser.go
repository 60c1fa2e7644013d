// Package recipetext normalises raw recipe text and builds indexable
// documents from recipe records.
package recipetext

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

var (
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// Normaliser canonicalises raw recipe text.
type Normaliser struct{}

// New creates a new recipe text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts all line terminators to \n, collapses runs of
// horizontal whitespace to one space, collapses three or more
// consecutive newlines to exactly one blank line and trims the result.
// It is total and idempotent.
func (n *Normaliser) Normalise(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalWS.ReplaceAllString(text, " ")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// BuildDocuments converts recipe records into documents, one per record
// and in the same order. Bodies are normalised; identifying fields are
// copied verbatim into metadata, never inferred or recomputed.
func (n *Normaliser) BuildDocuments(records []domain.RecipeRecord) []domain.Document {
	docs := make([]domain.Document, 0, len(records))
	for _, r := range records {
		docs = append(docs, domain.Document{
			Body: n.Normalise(r.Body),
			Meta: domain.DocumentMeta{
				RecipeID:  r.ID,
				Title:     r.Title,
				MealType:  r.MealType,
				Tags:      strings.Join(r.Tags, ","),
				Nutrition: r.Nutrition,
			},
		})
	}
	return docs
}
