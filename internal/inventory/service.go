package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddItem(ctx context.Context, item *Item) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}
	if item.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if item.Category == "" {
		item.Category = "other"
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) ListItems(ctx context.Context, userID string) ([]*Item, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) UpdateItem(ctx context.Context, item *Item) error {
	if item.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return s.repo.Update(ctx, item)
}

func (s *Service) DeleteItem(ctx context.Context, userID string, itemID int) error {
	return s.repo.Delete(ctx, userID, itemID)
}

// BulkAdd inserts items one by one. A failing row is logged and
// counted; it never aborts the rest of the batch.
func (s *Service) BulkAdd(ctx context.Context, userID string, items []*Item) BulkResult {
	result := BulkResult{}

	for i, item := range items {
		item.UserID = userID
		if err := s.AddItem(ctx, item); err != nil {
			log.Printf("[INVENTORY] bulk insert row %d failed: %v", i, err)
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d (%s): %v", i, item.Name, err))
			continue
		}
		result.Inserted++
	}

	return result
}

// LogUsage records a consumption event for frequency tracking.
func (s *Service) LogUsage(ctx context.Context, usage *UsageLog) error {
	if usage.ItemName == "" {
		return errors.New("item name is required")
	}
	if usage.QuantityUsed <= 0 {
		usage.QuantityUsed = 1
	}
	return s.repo.LogUsage(ctx, usage)
}
