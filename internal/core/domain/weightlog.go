package domain

import "time"

// WeightEntry records body weight on a given date.
// At most one entry exists per date; saving again replaces it.
type WeightEntry struct {
	// LogDate is the measurement day, formatted 2006-01-02.
	LogDate string `json:"log_date"`

	// WeightKg is body weight in kilograms.
	WeightKg float64 `json:"weight_kg"`

	// BodyFatPct is body fat percentage, nil when not measured.
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`

	// CreatedAt is when the entry was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// Validate reports whether the entry values are usable.
func (e WeightEntry) Validate() error {
	if e.LogDate == "" || e.WeightKg <= 0 {
		return ErrInvalidInput
	}
	if e.BodyFatPct != nil && (*e.BodyFatPct < 0 || *e.BodyFatPct > 100) {
		return ErrInvalidInput
	}
	return nil
}
