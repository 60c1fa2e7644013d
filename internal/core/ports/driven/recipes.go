package driven

import (
	"context"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

// RecipeSource provides the fixed recipe corpus the index is built from.
type RecipeSource interface {
	// Load returns all recipe records, in corpus order.
	Load(ctx context.Context) ([]domain.RecipeRecord, error)
}
