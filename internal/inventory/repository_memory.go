package inventory

import (
	"context"
	"sort"
	"time"
)

// InMemoryRepository backs service and handler tests.
type InMemoryRepository struct {
	items     map[int]*Item
	usage     []*UsageLog
	nextID    int
	createErr error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:  make(map[int]*Item),
		nextID: 1,
	}
}

// FailNextCreate makes the following Create calls fail; used to test
// fire-and-collect bulk inserts.
func (r *InMemoryRepository) FailNextCreate(err error) {
	r.createErr = err
}

func (r *InMemoryRepository) Create(ctx context.Context, item *Item) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}

	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*Item, error) {
	var items []*Item
	for _, it := range r.items {
		if it.UserID == userID {
			copied := *it
			items = append(items, &copied)
		}
	}

	// expiration ascending, nulls last, id as tiebreak — mirrors the SQL
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.ExpirationDate == nil && b.ExpirationDate == nil:
			return a.ID < b.ID
		case a.ExpirationDate == nil:
			return false
		case b.ExpirationDate == nil:
			return true
		case a.ExpirationDate.Equal(*b.ExpirationDate):
			return a.ID < b.ID
		default:
			return a.ExpirationDate.Before(*b.ExpirationDate)
		}
	})

	return items, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, userID string, itemID int) (*Item, error) {
	it, ok := r.items[itemID]
	if !ok || it.UserID != userID {
		return nil, ErrNotFound
	}
	copied := *it
	return &copied, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, item *Item) error {
	existing, ok := r.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return ErrNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, userID string, itemID int) error {
	it, ok := r.items[itemID]
	if !ok || it.UserID != userID {
		return ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *InMemoryRepository) LogUsage(ctx context.Context, usage *UsageLog) error {
	usage.ID = len(r.usage) + 1
	if usage.UsedAt.IsZero() {
		usage.UsedAt = time.Now()
	}
	copied := *usage
	r.usage = append(r.usage, &copied)
	return nil
}
