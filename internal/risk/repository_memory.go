package risk

import (
	"context"
	"sort"
	"time"

	"pantrypal/internal/inventory"
)

// InMemoryRepository backs predictor tests.
type InMemoryRepository struct {
	Items    map[string][]*inventory.Item
	Usage    map[string]int // "userID/itemName" -> count in last 30 days
	Scores   map[int]*Score
	ItemsErr error
	UsageErr error
	SaveErr  error
	nextID   int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		Items:  make(map[string][]*inventory.Item),
		Usage:  make(map[string]int),
		Scores: make(map[int]*Score),
		nextID: 1,
	}
}

func (r *InMemoryRepository) ItemsByUser(ctx context.Context, userID string) ([]*inventory.Item, error) {
	if r.ItemsErr != nil {
		return nil, r.ItemsErr
	}
	return r.Items[userID], nil
}

func (r *InMemoryRepository) UsageCountLast30Days(ctx context.Context, userID, itemName string) (int, error) {
	if r.UsageErr != nil {
		return 0, r.UsageErr
	}
	return r.Usage[userID+"/"+itemName], nil
}

func (r *InMemoryRepository) UpsertScore(ctx context.Context, s *Score) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}

	if existing, ok := r.Scores[s.InventoryItemID]; ok {
		s.ID = existing.ID
	} else {
		s.ID = r.nextID
		r.nextID++
	}
	s.CalculatedAt = time.Now()

	copied := *s
	r.Scores[s.InventoryItemID] = &copied
	return nil
}

func (r *InMemoryRepository) ScoresByUser(ctx context.Context, userID string) ([]*Score, error) {
	var scores []*Score
	for _, s := range r.Scores {
		if s.UserID == userID {
			copied := *s
			scores = append(scores, &copied)
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].RiskScore > scores[j].RiskScore
	})
	return scores, nil
}

func (r *InMemoryRepository) UserIDsWithInventory(ctx context.Context) ([]string, error) {
	var ids []string
	for id, items := range r.Items {
		if len(items) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
