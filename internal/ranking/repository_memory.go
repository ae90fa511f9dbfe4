package ranking

import (
	"context"
	"errors"
)

// InMemoryRepository backs ranking tests. Rows are returned in the
// order they were added; callers add them in expiry order, mirroring
// the SQL ordering.
type InMemoryRepository struct {
	Rows     []*ItemWithRisk
	Ranks    map[int]int
	RowsErr  error
	RankErr  error
	RankErrs map[int]error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		Ranks:    make(map[int]int),
		RankErrs: make(map[int]error),
	}
}

func (r *InMemoryRepository) ItemsWithRisk(ctx context.Context, userID string) ([]*ItemWithRisk, error) {
	if r.RowsErr != nil {
		return nil, r.RowsErr
	}
	return r.Rows, nil
}

func (r *InMemoryRepository) SetPriorityRank(ctx context.Context, itemID, rank int) error {
	if r.RankErr != nil {
		return r.RankErr
	}
	if err, ok := r.RankErrs[itemID]; ok {
		return err
	}
	r.Ranks[itemID] = rank
	return nil
}

var errRankWrite = errors.New("rank write failed")
