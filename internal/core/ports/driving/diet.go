package driving

import (
	"context"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

// DietService manages the user profile, food log and weight log.
type DietService interface {
	// SaveProfile validates and stores the profile.
	SaveProfile(ctx context.Context, profile domain.UserProfile) error

	// Profile returns the saved profile, or domain.ErrNoProfile.
	Profile(ctx context.Context) (*domain.UserProfile, error)

	// Targets derives the daily energy and PFC targets from the
	// saved profile.
	Targets(ctx context.Context) (*domain.TDEEResult, error)

	// ProfileContext renders the profile and targets as the context
	// string fed to answer generation. Without a profile it returns
	// the fixed "not set" marker.
	ProfileContext(ctx context.Context) string

	// AddFood validates and appends a food log entry.
	AddFood(ctx context.Context, entry domain.FoodLogEntry) (int64, error)

	// DailyLog returns the food log entries for a day, oldest first.
	DailyLog(ctx context.Context, date string) ([]domain.FoodLogEntry, error)

	// DailyTotals returns the summed nutrition for a day.
	DailyTotals(ctx context.Context, date string) (domain.Nutrition, error)

	// DeleteFood removes a food log entry by ID.
	DeleteFood(ctx context.Context, id int64) error

	// LogWeight stores a weight measurement, replacing the same date.
	LogWeight(ctx context.Context, entry domain.WeightEntry) error

	// WeightHistory returns up to limit recent measurements, oldest first.
	WeightHistory(ctx context.Context, limit int) ([]domain.WeightEntry, error)
}
