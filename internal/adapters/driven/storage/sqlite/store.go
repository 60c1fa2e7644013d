package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/dietcoach-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driven"
)

// profileRowID pins the single-profile row.
const profileRowID = 1

// Store is a unified SQLite-based storage that provides access to the
// profile, food log and weight log stores through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified path.
// If dbPath is empty, defaults to ~/.dietcoach/diet.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".dietcoach", "diet.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ProfileStore returns a ProfileStore interface backed by this store.
func (s *Store) ProfileStore() driven.ProfileStore {
	return &profileStore{store: s}
}

// FoodLogStore returns a FoodLogStore interface backed by this store.
func (s *Store) FoodLogStore() driven.FoodLogStore {
	return &foodLogStore{store: s}
}

// WeightLogStore returns a WeightLogStore interface backed by this store.
func (s *Store) WeightLogStore() driven.WeightLogStore {
	return &weightLogStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Profile Store ====================

// profileStore implements driven.ProfileStore.
type profileStore struct {
	store *Store
}

var _ driven.ProfileStore = (*profileStore)(nil)

// Save stores or replaces the profile.
func (s *profileStore) Save(ctx context.Context, profile domain.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO user_profile (id, age, sex, height_cm, weight_kg, goal_weight_kg, activity_level, calorie_deficit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			age = excluded.age,
			sex = excluded.sex,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			goal_weight_kg = excluded.goal_weight_kg,
			activity_level = excluded.activity_level,
			calorie_deficit = excluded.calorie_deficit,
			updated_at = excluded.updated_at
	`, profileRowID, profile.Age, profile.Sex.String(), profile.HeightCm,
		profile.WeightKg, profile.GoalWeightKg, profile.ActivityLevel.String(),
		profile.CalorieDeficit, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Get returns the profile, or domain.ErrNoProfile when none is saved.
func (s *profileStore) Get(ctx context.Context) (*domain.UserProfile, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT age, sex, height_cm, weight_kg, goal_weight_kg, activity_level, calorie_deficit, updated_at
		FROM user_profile WHERE id = ?
	`, profileRowID)

	var profile domain.UserProfile
	var sex, activity string
	err := row.Scan(&profile.Age, &sex, &profile.HeightCm, &profile.WeightKg,
		&profile.GoalWeightKg, &activity, &profile.CalorieDeficit, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	profile.Sex = domain.Sex(sex)
	profile.ActivityLevel = domain.ActivityLevel(activity)
	return &profile, nil
}

// ==================== Food Log Store ====================

// foodLogStore implements driven.FoodLogStore.
type foodLogStore struct {
	store *Store
}

var _ driven.FoodLogStore = (*foodLogStore)(nil)

// Add appends a food log entry and returns its assigned ID.
func (s *foodLogStore) Add(ctx context.Context, entry domain.FoodLogEntry) (int64, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := s.store.db.ExecContext(ctx, `
		INSERT INTO food_log (log_date, meal_type, recipe_id, recipe_title, calories_kcal, protein_g, fat_g, carbs_g, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.LogDate, entry.MealType.String(), entry.RecipeID, entry.RecipeTitle,
		entry.Nutrition.CaloriesKcal, entry.Nutrition.ProteinG,
		entry.Nutrition.FatG, entry.Nutrition.CarbsG, entry.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting food log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

// ListByDate returns all entries for a day, oldest first.
func (s *foodLogStore) ListByDate(ctx context.Context, date string) ([]domain.FoodLogEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, log_date, meal_type, recipe_id, recipe_title, calories_kcal, protein_g, fat_g, carbs_g, created_at
		FROM food_log WHERE log_date = ? ORDER BY id
	`, date)
	if err != nil {
		return nil, fmt.Errorf("listing food log: %w", err)
	}
	defer rows.Close()

	var entries []domain.FoodLogEntry
	for rows.Next() {
		var entry domain.FoodLogEntry
		var mealType string
		err := rows.Scan(&entry.ID, &entry.LogDate, &mealType, &entry.RecipeID,
			&entry.RecipeTitle, &entry.Nutrition.CaloriesKcal,
			&entry.Nutrition.ProteinG, &entry.Nutrition.FatG,
			&entry.Nutrition.CarbsG, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning food log entry: %w", err)
		}
		entry.MealType = domain.MealType(mealType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating food log: %w", err)
	}
	return entries, nil
}

// TotalsByDate returns the summed nutrition for a day.
func (s *foodLogStore) TotalsByDate(ctx context.Context, date string) (domain.Nutrition, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(calories_kcal), 0), COALESCE(SUM(protein_g), 0),
		       COALESCE(SUM(fat_g), 0), COALESCE(SUM(carbs_g), 0)
		FROM food_log WHERE log_date = ?
	`, date)

	var total domain.Nutrition
	if err := row.Scan(&total.CaloriesKcal, &total.ProteinG, &total.FatG, &total.CarbsG); err != nil {
		return domain.Nutrition{}, fmt.Errorf("summing food log: %w", err)
	}
	return total, nil
}

// Delete removes an entry by ID.
func (s *foodLogStore) Delete(ctx context.Context, id int64) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM food_log WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting food log entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Weight Log Store ====================

// weightLogStore implements driven.WeightLogStore.
type weightLogStore struct {
	store *Store
}

var _ driven.WeightLogStore = (*weightLogStore)(nil)

// Upsert stores the entry, replacing any entry for the same date.
func (s *weightLogStore) Upsert(ctx context.Context, entry domain.WeightEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var bodyFat sql.NullFloat64
	if entry.BodyFatPct != nil {
		bodyFat = sql.NullFloat64{Float64: *entry.BodyFatPct, Valid: true}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO weight_log (log_date, weight_kg, body_fat_pct, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(log_date) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			body_fat_pct = excluded.body_fat_pct,
			created_at = excluded.created_at
	`, entry.LogDate, entry.WeightKg, bodyFat, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting weight entry: %w", err)
	}
	return nil
}

// History returns up to limit most recent entries, oldest first.
func (s *weightLogStore) History(ctx context.Context, limit int) ([]domain.WeightEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT log_date, weight_kg, body_fat_pct, created_at FROM (
			SELECT log_date, weight_kg, body_fat_pct, created_at
			FROM weight_log ORDER BY log_date DESC LIMIT ?
		) ORDER BY log_date ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing weight history: %w", err)
	}
	defer rows.Close()

	var entries []domain.WeightEntry
	for rows.Next() {
		var entry domain.WeightEntry
		var bodyFat sql.NullFloat64
		if err := rows.Scan(&entry.LogDate, &entry.WeightKg, &bodyFat, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning weight entry: %w", err)
		}
		if bodyFat.Valid {
			v := bodyFat.Float64
			entry.BodyFatPct = &v
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weight history: %w", err)
	}
	return entries, nil
}
