package waste

import (
	"context"
	"time"
)

// InMemoryRepository backs estimator tests.
type InMemoryRepository struct {
	Items       []*ItemWithRiskPrice
	Projections []*Projection
	Records     []*Record

	ItemsErr  error
	InsertErr error
	nextID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) ItemsWithRiskPrice(ctx context.Context, userID string) ([]*ItemWithRiskPrice, error) {
	if r.ItemsErr != nil {
		return nil, r.ItemsErr
	}
	return r.Items, nil
}

func (r *InMemoryRepository) FreshProjection(ctx context.Context, userID, period string, date time.Time) (*Projection, error) {
	for i := len(r.Projections) - 1; i >= 0; i-- {
		p := r.Projections[i]
		if p.UserID == userID && p.Period == period && p.ProjectionDate.Equal(date) {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) InsertProjection(ctx context.Context, p *Projection) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	copied := *p
	r.Projections = append(r.Projections, &copied)
	return nil
}

func (r *InMemoryRepository) InsertRecord(ctx context.Context, rec *Record) error {
	if r.InsertErr != nil {
		err := r.InsertErr
		r.InsertErr = nil
		return err
	}
	rec.ID = r.nextID
	r.nextID++
	rec.CreatedAt = time.Now()
	copied := *rec
	r.Records = append(r.Records, &copied)
	return nil
}

func (r *InMemoryRepository) RecordsSince(ctx context.Context, userID string, since time.Time) ([]*Record, error) {
	var records []*Record
	for _, rec := range r.Records {
		if rec.UserID == userID && !rec.WastedAt.Before(since) {
			copied := *rec
			records = append(records, &copied)
		}
	}
	return records, nil
}

func (r *InMemoryRepository) LedgerTotals(ctx context.Context, userID string) (float64, float64, int, error) {
	var grams, cost float64
	count := 0
	for _, rec := range r.Records {
		if rec.UserID == userID {
			grams += rec.Grams
			cost += rec.Cost
			count++
		}
	}
	return grams, cost, count, nil
}
