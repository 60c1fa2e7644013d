package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "diet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testProfile() domain.UserProfile {
	return domain.UserProfile{
		Age:            30,
		Sex:            domain.SexMale,
		HeightCm:       175,
		WeightKg:       80,
		GoalWeightKg:   72,
		ActivityLevel:  domain.ActivityModerate,
		CalorieDeficit: 500,
	}
}

func TestProfileStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	profiles := store.ProfileStore()
	ctx := context.Background()

	require.NoError(t, profiles.Save(ctx, testProfile()))

	got, err := profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Age)
	assert.Equal(t, domain.SexMale, got.Sex)
	assert.Equal(t, domain.ActivityModerate, got.ActivityLevel)
	assert.Equal(t, 500, got.CalorieDeficit)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestProfileStore_SaveReplaces(t *testing.T) {
	store := newTestStore(t)
	profiles := store.ProfileStore()
	ctx := context.Background()

	require.NoError(t, profiles.Save(ctx, testProfile()))

	updated := testProfile()
	updated.WeightKg = 78.5
	require.NoError(t, profiles.Save(ctx, updated))

	got, err := profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 78.5, got.WeightKg)
}

func TestProfileStore_GetWithoutProfile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ProfileStore().Get(context.Background())
	require.ErrorIs(t, err, domain.ErrNoProfile)
}

func TestFoodLogStore_AddListAndTotals(t *testing.T) {
	store := newTestStore(t)
	foodLog := store.FoodLogStore()
	ctx := context.Background()

	id1, err := foodLog.Add(ctx, domain.FoodLogEntry{
		LogDate: "2026-09-01", MealType: domain.MealBreakfast, RecipeTitle: "オートミール粥",
		Nutrition: domain.Nutrition{CaloriesKcal: 220, ProteinG: 12, FatG: 4, CarbsG: 35},
	})
	require.NoError(t, err)

	id2, err := foodLog.Add(ctx, domain.FoodLogEntry{
		LogDate: "2026-09-01", MealType: domain.MealLunch, RecipeID: "r1", RecipeTitle: "鶏むね肉のサラダボウル",
		Nutrition: domain.Nutrition{CaloriesKcal: 500, ProteinG: 40, FatG: 10, CarbsG: 30},
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	// A different day stays out of the listing.
	_, err = foodLog.Add(ctx, domain.FoodLogEntry{
		LogDate: "2026-09-02", MealType: domain.MealDinner, RecipeTitle: "豆腐ステーキ",
		Nutrition: domain.Nutrition{CaloriesKcal: 300},
	})
	require.NoError(t, err)

	entries, err := foodLog.ListByDate(ctx, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "オートミール粥", entries[0].RecipeTitle)
	assert.Equal(t, "r1", entries[1].RecipeID)

	totals, err := foodLog.TotalsByDate(ctx, "2026-09-01")
	require.NoError(t, err)
	assert.InDelta(t, 720, totals.CaloriesKcal, 0.001)
	assert.InDelta(t, 52, totals.ProteinG, 0.001)
	assert.InDelta(t, 14, totals.FatG, 0.001)
	assert.InDelta(t, 65, totals.CarbsG, 0.001)
}

func TestFoodLogStore_TotalsEmptyDay(t *testing.T) {
	store := newTestStore(t)

	totals, err := store.FoodLogStore().TotalsByDate(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, domain.Nutrition{}, totals)
}

func TestFoodLogStore_Delete(t *testing.T) {
	store := newTestStore(t)
	foodLog := store.FoodLogStore()
	ctx := context.Background()

	id, err := foodLog.Add(ctx, domain.FoodLogEntry{
		LogDate: "2026-09-01", MealType: domain.MealSnack, RecipeTitle: "ゆで卵",
	})
	require.NoError(t, err)

	require.NoError(t, foodLog.Delete(ctx, id))
	assert.ErrorIs(t, foodLog.Delete(ctx, id), domain.ErrNotFound)
}

func TestWeightLogStore_UpsertAndHistory(t *testing.T) {
	store := newTestStore(t)
	weights := store.WeightLogStore()
	ctx := context.Background()

	bodyFat := 22.5
	require.NoError(t, weights.Upsert(ctx, domain.WeightEntry{LogDate: "2026-08-30", WeightKg: 80.2}))
	require.NoError(t, weights.Upsert(ctx, domain.WeightEntry{LogDate: "2026-08-31", WeightKg: 80.0, BodyFatPct: &bodyFat}))
	require.NoError(t, weights.Upsert(ctx, domain.WeightEntry{LogDate: "2026-09-01", WeightKg: 79.6}))

	history, err := weights.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2026-08-30", history[0].LogDate)
	assert.Equal(t, "2026-09-01", history[2].LogDate)
	require.NotNil(t, history[1].BodyFatPct)
	assert.Equal(t, 22.5, *history[1].BodyFatPct)
	assert.Nil(t, history[0].BodyFatPct)
}

func TestWeightLogStore_UpsertReplacesSameDate(t *testing.T) {
	store := newTestStore(t)
	weights := store.WeightLogStore()
	ctx := context.Background()

	require.NoError(t, weights.Upsert(ctx, domain.WeightEntry{LogDate: "2026-09-01", WeightKg: 80}))
	require.NoError(t, weights.Upsert(ctx, domain.WeightEntry{LogDate: "2026-09-01", WeightKg: 79.4}))

	history, err := weights.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 79.4, history[0].WeightKg)
}

func TestWeightLogStore_HistoryLimitKeepsMostRecent(t *testing.T) {
	store := newTestStore(t)
	weights := store.WeightLogStore()
	ctx := context.Background()

	dates := []string{"2026-08-28", "2026-08-29", "2026-08-30", "2026-08-31"}
	for i, d := range dates {
		require.NoError(t, weights.Upsert(ctx, domain.WeightEntry{LogDate: d, WeightKg: 80 - float64(i)*0.2}))
	}

	history, err := weights.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-08-30", history[0].LogDate)
	assert.Equal(t, "2026-08-31", history[1].LogDate)
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diet.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.ProfileStore().Save(context.Background(), testProfile()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.ProfileStore().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, got.Age)
}
