package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

type fakeProfileStore struct {
	profile *domain.UserProfile
	saveErr error
}

func (f *fakeProfileStore) Save(_ context.Context, profile domain.UserProfile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.profile = &profile
	return nil
}

func (f *fakeProfileStore) Get(context.Context) (*domain.UserProfile, error) {
	if f.profile == nil {
		return nil, domain.ErrNoProfile
	}
	return f.profile, nil
}

type fakeFoodLogStore struct {
	entries []domain.FoodLogEntry
	nextID  int64
}

func (f *fakeFoodLogStore) Add(_ context.Context, entry domain.FoodLogEntry) (int64, error) {
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, entry)
	return entry.ID, nil
}

func (f *fakeFoodLogStore) ListByDate(_ context.Context, date string) ([]domain.FoodLogEntry, error) {
	var out []domain.FoodLogEntry
	for _, e := range f.entries {
		if e.LogDate == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeFoodLogStore) TotalsByDate(ctx context.Context, date string) (domain.Nutrition, error) {
	entries, _ := f.ListByDate(ctx, date)
	var total domain.Nutrition
	for _, e := range entries {
		total = total.Add(e.Nutrition)
	}
	return total, nil
}

func (f *fakeFoodLogStore) Delete(_ context.Context, id int64) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeWeightLogStore struct {
	entries   []domain.WeightEntry
	lastLimit int
}

func (f *fakeWeightLogStore) Upsert(_ context.Context, entry domain.WeightEntry) error {
	for i, e := range f.entries {
		if e.LogDate == entry.LogDate {
			f.entries[i] = entry
			return nil
		}
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeWeightLogStore) History(_ context.Context, limit int) ([]domain.WeightEntry, error) {
	f.lastLimit = limit
	if len(f.entries) > limit {
		return f.entries[len(f.entries)-limit:], nil
	}
	return f.entries, nil
}

func newTestDietService() (*DietService, *fakeProfileStore, *fakeFoodLogStore, *fakeWeightLogStore) {
	profiles := &fakeProfileStore{}
	foodLog := &fakeFoodLogStore{}
	weights := &fakeWeightLogStore{}
	return NewDietService(profiles, foodLog, weights), profiles, foodLog, weights
}

func TestSaveProfile_RejectsInvalid(t *testing.T) {
	svc, profiles, _, _ := newTestDietService()

	profile := maleProfile()
	profile.Age = 0

	err := svc.SaveProfile(context.Background(), profile)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, profiles.profile)
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	svc, _, _, _ := newTestDietService()

	require.NoError(t, svc.SaveProfile(context.Background(), maleProfile()))

	got, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, maleProfile(), *got)
}

func TestProfile_NotSet(t *testing.T) {
	svc, _, _, _ := newTestDietService()

	_, err := svc.Profile(context.Background())
	require.ErrorIs(t, err, domain.ErrNoProfile)
}

func TestTargets(t *testing.T) {
	svc, _, _, _ := newTestDietService()
	require.NoError(t, svc.SaveProfile(context.Background(), maleProfile()))

	targets, err := svc.Targets(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2210.6, targets.TargetKcal, 0.001)
}

func TestTargets_NoProfile(t *testing.T) {
	svc, _, _, _ := newTestDietService()

	_, err := svc.Targets(context.Background())
	require.ErrorIs(t, err, domain.ErrNoProfile)
}

func TestProfileContext_NotSetMarker(t *testing.T) {
	svc, _, _, _ := newTestDietService()

	assert.Equal(t, "プロフィール未設定", svc.ProfileContext(context.Background()))
}

func TestProfileContext_WithProfile(t *testing.T) {
	svc, _, _, _ := newTestDietService()
	require.NoError(t, svc.SaveProfile(context.Background(), maleProfile()))

	got := svc.ProfileContext(context.Background())
	assert.Contains(t, got, "男性・30歳")
	assert.Contains(t, got, "PFC目標")
}

func TestAddFood_AndDailyTotals(t *testing.T) {
	svc, _, _, _ := newTestDietService()

	entries := []domain.FoodLogEntry{
		{
			LogDate: "2026-09-01", MealType: domain.MealBreakfast, RecipeTitle: "オートミール粥",
			Nutrition: domain.Nutrition{CaloriesKcal: 220, ProteinG: 12, FatG: 4, CarbsG: 35},
		},
		{
			LogDate: "2026-09-01", MealType: domain.MealLunch, RecipeTitle: "鶏むね肉のサラダボウル",
			Nutrition: domain.Nutrition{CaloriesKcal: 500, ProteinG: 40, FatG: 10, CarbsG: 30},
		},
	}
	for _, e := range entries {
		_, err := svc.AddFood(context.Background(), e)
		require.NoError(t, err)
	}

	log, err := svc.DailyLog(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Len(t, log, 2)

	totals, err := svc.DailyTotals(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.InDelta(t, 720, totals.CaloriesKcal, 0.001)
	assert.InDelta(t, 52, totals.ProteinG, 0.001)
}

func TestAddFood_RejectsInvalid(t *testing.T) {
	svc, _, _, _ := newTestDietService()

	_, err := svc.AddFood(context.Background(), domain.FoodLogEntry{LogDate: "2026-09-01"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDailyLog_EmptyDate(t *testing.T) {
	svc, _, _, _ := newTestDietService()

	_, err := svc.DailyLog(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteFood(t *testing.T) {
	svc, _, foodLog, _ := newTestDietService()

	id, err := svc.AddFood(context.Background(), domain.FoodLogEntry{
		LogDate: "2026-09-01", MealType: domain.MealSnack, RecipeTitle: "ゆで卵",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFood(context.Background(), id))
	assert.Empty(t, foodLog.entries)

	assert.ErrorIs(t, svc.DeleteFood(context.Background(), id), domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteFood(context.Background(), 0), domain.ErrInvalidInput)
}

func TestLogWeight_ReplacesSameDate(t *testing.T) {
	svc, _, _, weights := newTestDietService()

	require.NoError(t, svc.LogWeight(context.Background(), domain.WeightEntry{LogDate: "2026-09-01", WeightKg: 80}))
	require.NoError(t, svc.LogWeight(context.Background(), domain.WeightEntry{LogDate: "2026-09-01", WeightKg: 79.5}))

	require.Len(t, weights.entries, 1)
	assert.Equal(t, 79.5, weights.entries[0].WeightKg)
}

func TestLogWeight_RejectsInvalid(t *testing.T) {
	svc, _, _, _ := newTestDietService()

	err := svc.LogWeight(context.Background(), domain.WeightEntry{LogDate: "2026-09-01"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	pct := 140.0
	err = svc.LogWeight(context.Background(), domain.WeightEntry{
		LogDate: "2026-09-01", WeightKg: 80, BodyFatPct: &pct,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWeightHistory_DefaultLimit(t *testing.T) {
	svc, _, _, weights := newTestDietService()

	_, err := svc.WeightHistory(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, weights.lastLimit)
}
