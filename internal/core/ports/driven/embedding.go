package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// It is used twice in the answer pipeline: per chunk at index-build time
// and per question at query time. Building is the expensive, billed path;
// callers avoid it whenever a usable index already exists.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - OpenAI-compatible inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
