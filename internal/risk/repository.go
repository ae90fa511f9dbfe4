package risk

import (
	"context"

	"pantrypal/internal/inventory"
)

// Repository defines all database operations for risk scoring.
type Repository interface {
	// Inventory rows the predictor scores.
	ItemsByUser(ctx context.Context, userID string) ([]*inventory.Item, error)

	// Usage-log rows for this item name within the last 30 days.
	UsageCountLast30Days(ctx context.Context, userID, itemName string) (int, error)

	// Insert-or-overwrite keyed by inventory_item_id.
	UpsertScore(ctx context.Context, score *Score) error

	ScoresByUser(ctx context.Context, userID string) ([]*Score, error)

	// Users with at least one inventory row; drives the recompute worker.
	UserIDsWithInventory(ctx context.Context) ([]string, error)
}
