package driving

import "context"

// IndexStatus describes the persistent vector index.
type IndexStatus struct {
	// ItemCount is the number of stored chunks.
	ItemCount int `json:"item_count"`

	// Usable is true when the index can serve retrieval
	// (item count strictly greater than zero).
	Usable bool `json:"usable"`
}

// IndexService owns the embedding index lifecycle.
type IndexService interface {
	// LoadOrBuild reuses the persisted index when it is usable,
	// otherwise builds it from the recipe corpus. Embedding failures
	// during a build propagate; a half-built index is never reported
	// as ready.
	LoadOrBuild(ctx context.Context) error

	// Rebuild clears the index (best effort) and rebuilds it from the
	// current corpus, in place, under the same name and location.
	Rebuild(ctx context.Context) error

	// Status reports the stored item count.
	Status(ctx context.Context) (IndexStatus, error)
}
