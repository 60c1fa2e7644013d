// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - EmbeddingService: turns text into vectors (index build and query time)
//   - ChatService: single-turn answer generation
//   - VectorStore: persistent chunk/vector collection with similarity search
//   - RecipeSource: provides the fixed recipe corpus
//   - ProfileStore, FoodLogStore, WeightLogStore: diet tracking persistence
package driven
