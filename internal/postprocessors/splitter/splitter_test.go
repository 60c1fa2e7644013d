package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

func docWithBody(body string) domain.Document {
	return domain.Document{
		Body: body,
		Meta: domain.DocumentMeta{
			RecipeID: "r1",
			Title:    "鮭のホイル焼き",
			Tags:     "高たんぱく",
			Nutrition: domain.Nutrition{
				CaloriesKcal: 250, ProteinG: 28, FatG: 12, CarbsG: 4,
			},
		},
	}
}

func TestShortDocumentYieldsSingleIdenticalChunk(t *testing.T) {
	s := New(WithChunkSize(700), WithOverlap(100))

	body := "【材料】鮭、えのき、味噌\n\n【作り方】包んで焼く"
	chunks := s.Split([]domain.Document{docWithBody(body)})

	require.Len(t, chunks, 1)
	assert.Equal(t, body, chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Position)
}

func TestChunkLengthNeverExceedsChunkSize(t *testing.T) {
	s := New(WithChunkSize(50), WithOverlap(10))

	bodies := []string{
		strings.Repeat("あ", 500),
		strings.Repeat("一段落です。", 20) + "\n\n" + strings.Repeat("二段落です。", 20),
		strings.Repeat("word ", 100),
		"短い本文",
	}

	for _, body := range bodies {
		chunks := s.Split([]domain.Document{docWithBody(body)})
		require.NotEmpty(t, chunks)
		for _, c := range chunks {
			assert.LessOrEqual(t, len([]rune(c.Content)), 50)
		}
	}
}

func TestPrefersParagraphBoundaries(t *testing.T) {
	s := New(WithChunkSize(30), WithOverlap(0))

	para1 := strings.Repeat("a", 25)
	para2 := strings.Repeat("b", 25)
	chunks := s.Split([]domain.Document{docWithBody(para1 + "\n\n" + para2)})

	require.Len(t, chunks, 2)
	assert.Equal(t, para1, chunks[0].Content)
	assert.Equal(t, para2, chunks[1].Content)
}

func TestCharacterFallbackOverlaps(t *testing.T) {
	s := New(WithChunkSize(20), WithOverlap(5))

	// No paragraph, line or word boundaries at all.
	body := strings.Repeat("あいうえお", 10)
	chunks := s.Split([]domain.Document{docWithBody(body)})

	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Content)
		tail := string(prev[len(prev)-5:])
		assert.True(t, strings.HasPrefix(chunks[i].Content, tail),
			"chunk %d should start with the previous chunk's 5-rune tail", i)
	}
}

func TestChunksInheritMetadata(t *testing.T) {
	s := New(WithChunkSize(40), WithOverlap(0))

	doc := docWithBody(strings.Repeat("タンパク質 ", 30))
	chunks := s.Split([]domain.Document{doc})

	require.NotEmpty(t, chunks)
	seen := map[string]bool{}
	for i, c := range chunks {
		assert.Equal(t, doc.Meta, c.Meta)
		assert.Equal(t, i, c.Position)
		assert.False(t, seen[c.ID], "chunk IDs must be unique")
		seen[c.ID] = true
	}
}

func TestEmptyDocumentYieldsNoChunks(t *testing.T) {
	s := New()
	assert.Empty(t, s.Split([]domain.Document{{Body: ""}}))
}

func TestOverlapClampedBelowChunkSize(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(100))
	assert.Equal(t, 25, s.overlap)
}
