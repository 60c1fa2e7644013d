package driving

import (
	"context"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

// AskOptions configures one answer-generation call.
type AskOptions struct {
	// TopK is the number of chunks to retrieve. Zero means the
	// configured default.
	TopK int

	// Temperature is the generation temperature. Negative means the
	// configured default.
	Temperature float64
}

// AdvisorService answers free-text nutrition questions grounded in the
// retrieved recipe context.
type AdvisorService interface {
	// Ask retrieves context for the question, applies the grounding
	// guard and returns a citation-grounded answer. Guard
	// short-circuits return a well-formed no-match answer, not an
	// error.
	Ask(ctx context.Context, question string, opts AskOptions) (domain.AnswerResult, error)
}

// Retriever returns the chunks most similar to a query.
type Retriever interface {
	// Retrieve returns up to k chunks ranked by descending similarity.
	// An empty result is valid output.
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error)
}
