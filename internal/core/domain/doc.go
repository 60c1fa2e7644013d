// Package domain defines the core business entities for the diet coach.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RecipeRecord: A recipe as provided by the corpus
//   - Document: Normalised recipe text plus metadata, unit of indexing
//   - Chunk: A bounded, overlapping fragment of a document
//   - AnswerResult: A citation-grounded answer to a nutrition question
//   - UserProfile, FoodLogEntry, WeightEntry: diet tracking records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
