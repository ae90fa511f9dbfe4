package ranking

import "context"

// Repository defines the database operations ranking needs.
type Repository interface {
	// Inventory left-joined with risk scores, ordered by expiration
	// ascending with nulls last. Missing scores default to 50.
	ItemsWithRisk(ctx context.Context, userID string) ([]*ItemWithRisk, error)

	// Best-effort rank write-back onto the risk score row.
	SetPriorityRank(ctx context.Context, itemID, rank int) error
}
