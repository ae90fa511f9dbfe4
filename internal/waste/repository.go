package waste

import (
	"context"
	"time"
)

// Repository defines all database operations for waste estimation.
type Repository interface {
	// Inventory joined with risk scores (default 50) and reference
	// prices (0 when the item name has no price row).
	ItemsWithRiskPrice(ctx context.Context, userID string) ([]*ItemWithRiskPrice, error)

	// FreshProjection returns the cached projection for the given
	// period and day-window, or nil when none exists.
	FreshProjection(ctx context.Context, userID, period string, date time.Time) (*Projection, error)
	InsertProjection(ctx context.Context, p *Projection) error

	InsertRecord(ctx context.Context, r *Record) error
	RecordsSince(ctx context.Context, userID string, since time.Time) ([]*Record, error)

	// All-time ledger totals.
	LedgerTotals(ctx context.Context, userID string) (grams, cost float64, count int, err error)
}
