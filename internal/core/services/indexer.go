package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dietcoach-cli/internal/logger"
	"github.com/custodia-labs/dietcoach-cli/internal/normalisers/recipetext"
	"github.com/custodia-labs/dietcoach-cli/internal/postprocessors/splitter"
)

// Ensure IndexService implements the interfaces.
var (
	_ driving.IndexService = (*IndexService)(nil)
	_ driving.Retriever    = (*IndexService)(nil)
)

// IndexService owns the embedding index lifecycle and serves retrieval.
//
// Lifecycle: LoadOrBuild opens the persisted collection and reuses it
// when it holds at least one item; a failed count or a zero count means
// the index is absent and triggers a build. Embedding is the expensive,
// billed operation, so reuse is the hot path. Build failures propagate:
// a half-built index must never be reported as ready.
type IndexService struct {
	recipes    driven.RecipeSource
	store      driven.VectorStore
	embedder   driven.EmbeddingService
	normaliser *recipetext.Normaliser
	splitter   *splitter.Splitter
}

// NewIndexService creates a new index service.
func NewIndexService(
	recipes driven.RecipeSource,
	store driven.VectorStore,
	embedder driven.EmbeddingService,
	chunkSize, chunkOverlap int,
) *IndexService {
	return &IndexService{
		recipes:    recipes,
		store:      store,
		embedder:   embedder,
		normaliser: recipetext.New(),
		splitter: splitter.New(
			splitter.WithChunkSize(chunkSize),
			splitter.WithOverlap(chunkOverlap),
		),
	}
}

// LoadOrBuild reuses the persisted index when it is usable, otherwise
// builds it from the recipe corpus.
func (s *IndexService) LoadOrBuild(ctx context.Context) error {
	logger.Section("Index Load")

	count, err := s.store.Count(ctx)
	if err != nil {
		// An unreadable index is treated as absent, never surfaced.
		logger.Warn("Index count failed, rebuilding: %v", err)
		count = 0
	}
	if count > 0 {
		logger.Info("Reusing existing index (%d items), skipping embedding", count)
		return nil
	}

	logger.Info("Index absent or empty, building")
	return s.build(ctx)
}

// Rebuild clears the index (best effort) and rebuilds it in place from
// the current corpus, under the same collection name and location.
func (s *IndexService) Rebuild(ctx context.Context) error {
	logger.Section("Index Rebuild")

	if err := s.store.DeleteAll(ctx); err != nil {
		// Stale items may survive alongside fresh ones; rebuild is an
		// explicit maintenance operation, so keep going.
		logger.Warn("Index delete failed, continuing: %v", err)
	}
	return s.build(ctx)
}

// Status reports the stored item count.
func (s *IndexService) Status(ctx context.Context) (driving.IndexStatus, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return driving.IndexStatus{}, fmt.Errorf("counting index items: %w", err)
	}
	return driving.IndexStatus{ItemCount: count, Usable: count > 0}, nil
}

// Retrieve embeds the query and returns up to k chunks ranked by
// descending similarity. An empty result is valid output.
func (s *IndexService) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("retrieving: %w", domain.ErrInvalidInput)
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.store.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	logger.Debug("Retrieved %d chunks for query %q", len(results), query)
	return results, nil
}

// build splits the corpus into chunks, embeds them in one batch and
// inserts the triples. Embedding errors propagate to the caller.
func (s *IndexService) build(ctx context.Context) error {
	records, err := s.recipes.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading recipes: %w", err)
	}

	docs := s.normaliser.BuildDocuments(records)
	chunks := s.splitter.Split(docs)
	if len(chunks) == 0 {
		logger.Warn("Corpus produced no chunks, index left empty")
		return nil
	}
	logger.Debug("Split %d documents into %d chunks", len(docs), len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}

	if err := s.store.Insert(ctx, chunks, vectors); err != nil {
		return fmt.Errorf("inserting chunks: %w", err)
	}

	logger.Info("Indexed %d chunks with model %s", len(chunks), s.embedder.ModelName())
	return nil
}
