package chromem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

func testChunk(id, recipeID, content string) domain.Chunk {
	return domain.Chunk{
		ID:      id,
		Content: content,
		Meta: domain.DocumentMeta{
			RecipeID: recipeID,
			Title:    "鶏むね肉の塩麹蒸し",
			MealType: domain.MealDinner,
			Tags:     "高たんぱく,低脂質",
			Nutrition: domain.Nutrition{
				CaloriesKcal: 280.5, ProteinG: 38.2, FatG: 5.1, CarbsG: 12.4,
			},
		},
	}
}

func TestStore_InsertAndQuery(t *testing.T) {
	store, err := New(t.TempDir(), "recipes")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	chunks := []domain.Chunk{
		testChunk("c1", "r1", "鶏むね肉を蒸します"),
		testChunk("c2", "r2", "オートミールを煮ます"),
	}
	vectors := [][]float32{{1, 0, 0}, {0, 1, 0}}

	require.NoError(t, store.Insert(ctx, chunks, vectors))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	results, err := store.Query(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "鶏むね肉を蒸します", results[0].Content)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestStore_MetadataRoundTrip(t *testing.T) {
	store, err := New(t.TempDir(), "recipes")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	chunk := testChunk("c1", "r1", "本文")
	require.NoError(t, store.Insert(ctx, []domain.Chunk{chunk}, [][]float32{{1, 0}}))

	results, err := store.Query(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, chunk.Meta, results[0].Meta)
}

func TestStore_QueryClampsToStoredCount(t *testing.T) {
	store, err := New(t.TempDir(), "recipes")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, []domain.Chunk{testChunk("c1", "r1", "本文")}, [][]float32{{1, 0}}))

	results, err := store.Query(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStore_QueryEmptyStore(t *testing.T) {
	store, err := New(t.TempDir(), "recipes")
	require.NoError(t, err)
	defer store.Close()

	results, err := store.Query(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_InsertLengthMismatch(t *testing.T) {
	store, err := New(t.TempDir(), "recipes")
	require.NoError(t, err)
	defer store.Close()

	err = store.Insert(context.Background(), []domain.Chunk{testChunk("c1", "r1", "本文")}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_DeleteAll(t *testing.T) {
	store, err := New(t.TempDir(), "recipes")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, []domain.Chunk{testChunk("c1", "r1", "本文")}, [][]float32{{1, 0}}))
	require.NoError(t, store.DeleteAll(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The collection stays usable after clearing.
	require.NoError(t, store.Insert(ctx, []domain.Chunk{testChunk("c2", "r2", "別の本文")}, [][]float32{{0, 1}}))
	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := New(dir, "recipes")
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, []domain.Chunk{testChunk("c1", "r1", "本文")}, [][]float32{{1, 0}}))
	require.NoError(t, store.Close())

	reopened, err := New(dir, "recipes")
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
