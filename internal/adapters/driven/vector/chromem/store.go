// Package chromem provides a persistent vector store adapter backed by
// chromem-go.
package chromem

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dietcoach-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Metadata keys stored alongside each chunk.
const (
	metaRecipeID = "id"
	metaTitle    = "title"
	metaMealType = "meal_type"
	metaTags     = "tags"
	metaCalories = "calories_kcal"
	metaProtein  = "protein_g"
	metaFat      = "fat_g"
	metaCarbs    = "carbs_g"
)

// Store is a persistent vector collection under a filesystem directory.
// The same directory and collection name always address the same data.
type Store struct {
	mu         sync.Mutex
	db         *chromem.DB
	collection *chromem.Collection
	name       string
}

// noEmbed rejects server-side embedding. Vectors always arrive
// precomputed through Insert and Query.
func noEmbed(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("chromem: embedding is supplied by the caller")
}

// collectionMeta pins the similarity space.
var collectionMeta = map[string]string{"hnsw:space": "cosine"}

// New opens or creates the collection persisted under dir. An unreadable
// store is discarded and recreated empty; the index manager rebuilds it.
func New(dir, name string) (*Store, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		logger.Warn("Vector store unreadable, recreating: %v", err)
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			return nil, fmt.Errorf("resetting vector store dir: %w", rmErr)
		}
		db, err = chromem.NewPersistentDB(dir, false)
		if err != nil {
			return nil, fmt.Errorf("opening vector store: %w", err)
		}
	}

	collection, err := db.GetOrCreateCollection(name, collectionMeta, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("opening collection %q: %w", name, err)
	}

	return &Store{db: db, collection: collection, name: name}, nil
}

// Count returns the number of stored items.
func (s *Store) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Count(), nil
}

// Insert stores chunks with their embedding vectors and metadata.
func (s *Store) Insert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("inserting: %d chunks but %d vectors: %w",
			len(chunks), len(vectors), domain.ErrInvalidInput)
	}
	if len(chunks) == 0 {
		return nil
	}

	ids := make([]string, len(chunks))
	metadatas := make([]map[string]string, len(chunks))
	contents := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ID
		metadatas[i] = encodeMeta(c.Meta)
		contents[i] = c.Content
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.collection.Add(ctx, ids, vectors, metadatas, contents); err != nil {
		return fmt.Errorf("adding %d items: %w", len(chunks), err)
	}
	return nil
}

// Query returns up to k stored chunks ranked by descending similarity.
// A store holding fewer than k items returns what it has; an empty
// store returns no results.
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]domain.RetrievedChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	out := make([]domain.RetrievedChunk, 0, len(results))
	for _, r := range results {
		out = append(out, domain.RetrievedChunk{
			Content:    r.Content,
			Meta:       decodeMeta(r.Metadata),
			Similarity: r.Similarity,
		})
	}
	return out, nil
}

// DeleteAll removes every stored item, keeping the collection name and
// location.
func (s *Store) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("deleting collection %q: %w", s.name, err)
	}
	collection, err := s.db.GetOrCreateCollection(s.name, collectionMeta, noEmbed)
	if err != nil {
		return fmt.Errorf("recreating collection %q: %w", s.name, err)
	}
	s.collection = collection
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	// chromem persists on write and needs no explicit shutdown.
	return nil
}

// encodeMeta flattens chunk metadata into chromem's string map.
// Nutrition values use the shortest exact decimal form so citations
// reproduce the corpus values bit for bit.
func encodeMeta(meta domain.DocumentMeta) map[string]string {
	return map[string]string{
		metaRecipeID: meta.RecipeID,
		metaTitle:    meta.Title,
		metaMealType: meta.MealType.String(),
		metaTags:     meta.Tags,
		metaCalories: formatFloat(meta.Nutrition.CaloriesKcal),
		metaProtein:  formatFloat(meta.Nutrition.ProteinG),
		metaFat:      formatFloat(meta.Nutrition.FatG),
		metaCarbs:    formatFloat(meta.Nutrition.CarbsG),
	}
}

// decodeMeta restores chunk metadata from the string map.
func decodeMeta(m map[string]string) domain.DocumentMeta {
	return domain.DocumentMeta{
		RecipeID: m[metaRecipeID],
		Title:    m[metaTitle],
		MealType: domain.MealType(m[metaMealType]),
		Tags:     m[metaTags],
		Nutrition: domain.Nutrition{
			CaloriesKcal: parseFloat(m[metaCalories]),
			ProteinG:     parseFloat(m[metaProtein]),
			FatG:         parseFloat(m[metaFat]),
			CarbsG:       parseFloat(m[metaCarbs]),
		},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
