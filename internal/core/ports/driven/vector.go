package driven

import (
	"context"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

// VectorStore is a named, persistently stored collection mapping chunks
// to embedding vectors. Exactly one collection exists per (storage
// location, collection name) pair; contents survive process restarts.
//
// Count and DeleteAll are first-class operations: the index manager
// decides build-vs-reuse from the stored item count and rebuilds by
// clearing the collection in place.
type VectorStore interface {
	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Insert stores chunks with their embedding vectors and metadata.
	// vectors[i] is the embedding of chunks[i].
	Insert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error

	// Query returns up to k stored chunks ranked by descending
	// similarity to the query vector. Fewer than k results, including
	// none, is valid output.
	Query(ctx context.Context, vector []float32, k int) ([]domain.RetrievedChunk, error)

	// DeleteAll removes every stored item, keeping the collection
	// name and location.
	DeleteAll(ctx context.Context) error

	// Close releases resources.
	Close() error
}
