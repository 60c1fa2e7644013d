package driven

import (
	"context"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

// ProfileStore persists the single user profile.
type ProfileStore interface {
	// Save stores or replaces the profile.
	Save(ctx context.Context, profile domain.UserProfile) error

	// Get returns the profile, or domain.ErrNoProfile when none is saved.
	Get(ctx context.Context) (*domain.UserProfile, error)
}

// FoodLogStore persists eaten-meal records.
type FoodLogStore interface {
	// Add appends a food log entry and returns its assigned ID.
	Add(ctx context.Context, entry domain.FoodLogEntry) (int64, error)

	// ListByDate returns all entries for a day, oldest first.
	ListByDate(ctx context.Context, date string) ([]domain.FoodLogEntry, error)

	// TotalsByDate returns the summed nutrition for a day.
	// A day without entries sums to zero.
	TotalsByDate(ctx context.Context, date string) (domain.Nutrition, error)

	// Delete removes an entry by ID.
	Delete(ctx context.Context, id int64) error
}

// WeightLogStore persists body-weight measurements, one per date.
type WeightLogStore interface {
	// Upsert stores the entry, replacing any entry for the same date.
	Upsert(ctx context.Context, entry domain.WeightEntry) error

	// History returns up to limit most recent entries, oldest first.
	History(ctx context.Context, limit int) ([]domain.WeightEntry, error)
}
