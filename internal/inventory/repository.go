package inventory

import "context"

// Repository defines all database operations for pantry items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	ListByUser(ctx context.Context, userID string) ([]*Item, error)
	GetByID(ctx context.Context, userID string, itemID int) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, userID string, itemID int) error

	LogUsage(ctx context.Context, log *UsageLog) error
}
