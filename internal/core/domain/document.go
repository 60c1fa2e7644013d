package domain

// DocumentMeta carries the identifying fields of the source recipe.
// It is copied verbatim from the RecipeRecord and is never inferred
// or recomputed downstream.
type DocumentMeta struct {
	// RecipeID is the source recipe identifier.
	RecipeID string

	// Title is the source recipe title.
	Title string

	// MealType is the source recipe meal slot.
	MealType MealType

	// Tags is the comma-joined tag list of the source recipe.
	Tags string

	// Nutrition holds the source recipe calorie and PFC values.
	Nutrition Nutrition
}

// Document is the normalised text of one recipe plus its metadata.
// It is the unit the splitter breaks into chunks for indexing.
type Document struct {
	// Body is the full recipe text after normalisation.
	Body string

	// Meta identifies the source recipe.
	Meta DocumentMeta
}

// Chunk is a bounded, overlapping fragment of a document's body.
// Chunks are the unit of embedding and retrieval. They are created
// once per index build and never mutated.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Meta is the parent document's metadata, unchanged.
	Meta DocumentMeta
}

// RetrievedChunk is one similarity-search hit, most similar first.
// Retrieved chunks are produced per query and never persisted.
type RetrievedChunk struct {
	// Content is the chunk text.
	Content string

	// Meta is the chunk's recipe metadata.
	Meta DocumentMeta

	// Similarity is the cosine similarity to the query (0-1).
	Similarity float32
}
