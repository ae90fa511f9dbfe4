package community

import (
	"context"
	"time"
)

// Repository defines the database operations for community comparison.
type Repository interface {
	// All aggregate rows, one per category.
	AllStats(ctx context.Context) ([]*Stats, error)

	// Aggregate row for one category (nil when the community has no
	// data for it).
	StatsForCategory(ctx context.Context, category string) (*Stats, error)

	// Categories the user currently holds inventory in.
	UserCategories(ctx context.Context, userID string) ([]string, error)

	// User's waste grams per category from the ledger since the given
	// date.
	UserCategoryGrams(ctx context.Context, userID string, since time.Time) (map[string]float64, error)

	// Most recent waste reasons, newest first.
	RecentReasons(ctx context.Context, userID string, since time.Time) ([]string, error)

	// Upsert one aggregate row; used by the admin recompute.
	UpsertStats(ctx context.Context, s *Stats) error

	// Per-user weekly waste grams/cost per category over a window,
	// input to the recompute.
	CategoryWeeklyAverages(ctx context.Context, since time.Time) (map[string][]CategorySample, error)
}

// CategorySample is one user's weekly average waste in one category.
type CategorySample struct {
	UserID string
	Grams  float64
	Cost   float64
}
