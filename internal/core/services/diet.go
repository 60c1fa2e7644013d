package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dietcoach-cli/internal/logger"
)

// Ensure DietService implements the interfaces.
var (
	_ driving.DietService    = (*DietService)(nil)
	_ ProfileContextProvider = (*DietService)(nil)
)

// noProfileContext marks a missing profile in the answer prompt.
const noProfileContext = "プロフィール未設定"

// DietService manages the user profile, food log and weight log.
type DietService struct {
	profiles driven.ProfileStore
	foodLog  driven.FoodLogStore
	weights  driven.WeightLogStore
}

// NewDietService creates a new diet service.
func NewDietService(
	profiles driven.ProfileStore,
	foodLog driven.FoodLogStore,
	weights driven.WeightLogStore,
) *DietService {
	return &DietService{profiles: profiles, foodLog: foodLog, weights: weights}
}

// SaveProfile validates and stores the profile.
func (s *DietService) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	logger.Info("Saved profile (%s, %d years)", profile.Sex, profile.Age)
	return nil
}

// Profile returns the saved profile.
func (s *DietService) Profile(ctx context.Context) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx)
}

// Targets derives the daily energy and PFC targets from the saved
// profile.
func (s *DietService) Targets(ctx context.Context) (*domain.TDEEResult, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	result := CalcTDEE(*profile)
	return &result, nil
}

// ProfileContext renders the saved profile and its targets for the
// answer prompt. A missing or unreadable profile yields the fixed
// "not set" marker so answering still works without one.
func (s *DietService) ProfileContext(ctx context.Context) string {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		logger.Debug("Profile unavailable for context: %v", err)
		return noProfileContext
	}
	return FormatProfileContext(*profile, CalcTDEE(*profile))
}

// AddFood validates and appends a food log entry.
func (s *DietService) AddFood(ctx context.Context, entry domain.FoodLogEntry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, fmt.Errorf("adding food log entry: %w", err)
	}
	id, err := s.foodLog.Add(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("adding food log entry: %w", err)
	}
	logger.Debug("Added food log entry %d (%s)", id, entry.RecipeTitle)
	return id, nil
}

// DailyLog returns the food log entries for a day, oldest first.
func (s *DietService) DailyLog(ctx context.Context, date string) ([]domain.FoodLogEntry, error) {
	if date == "" {
		return nil, fmt.Errorf("listing food log: %w", domain.ErrInvalidInput)
	}
	return s.foodLog.ListByDate(ctx, date)
}

// DailyTotals returns the summed nutrition for a day.
func (s *DietService) DailyTotals(ctx context.Context, date string) (domain.Nutrition, error) {
	if date == "" {
		return domain.Nutrition{}, fmt.Errorf("summing food log: %w", domain.ErrInvalidInput)
	}
	return s.foodLog.TotalsByDate(ctx, date)
}

// DeleteFood removes a food log entry by ID.
func (s *DietService) DeleteFood(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("deleting food log entry: %w", domain.ErrInvalidInput)
	}
	return s.foodLog.Delete(ctx, id)
}

// LogWeight stores a weight measurement, replacing the same date.
func (s *DietService) LogWeight(ctx context.Context, entry domain.WeightEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("logging weight: %w", err)
	}
	return s.weights.Upsert(ctx, entry)
}

// WeightHistory returns up to limit recent measurements, oldest first.
func (s *DietService) WeightHistory(ctx context.Context, limit int) ([]domain.WeightEntry, error) {
	if limit <= 0 {
		limit = 30
	}
	return s.weights.History(ctx, limit)
}
