package community

import (
	"context"
	"sort"
	"strings"
	"time"
)

// InMemoryRepository backs comparator tests.
type InMemoryRepository struct {
	Stats         map[string]*Stats
	Categories    map[string][]string
	CategoryGrams map[string]map[string]float64
	Reasons       map[string][]string
	Samples       map[string][]CategorySample

	StatsErr      error
	CategoriesErr error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		Stats:         make(map[string]*Stats),
		Categories:    make(map[string][]string),
		CategoryGrams: make(map[string]map[string]float64),
		Reasons:       make(map[string][]string),
		Samples:       make(map[string][]CategorySample),
	}
}

func (r *InMemoryRepository) AllStats(ctx context.Context) ([]*Stats, error) {
	if r.StatsErr != nil {
		return nil, r.StatsErr
	}
	var stats []*Stats
	for _, s := range r.Stats {
		copied := *s
		stats = append(stats, &copied)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Category < stats[j].Category
	})
	return stats, nil
}

func (r *InMemoryRepository) StatsForCategory(ctx context.Context, category string) (*Stats, error) {
	if r.StatsErr != nil {
		return nil, r.StatsErr
	}
	s, ok := r.Stats[strings.ToLower(category)]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *InMemoryRepository) UserCategories(ctx context.Context, userID string) ([]string, error) {
	if r.CategoriesErr != nil {
		return nil, r.CategoriesErr
	}
	return r.Categories[userID], nil
}

func (r *InMemoryRepository) UserCategoryGrams(ctx context.Context, userID string, since time.Time) (map[string]float64, error) {
	grams := r.CategoryGrams[userID]
	if grams == nil {
		grams = make(map[string]float64)
	}
	return grams, nil
}

func (r *InMemoryRepository) RecentReasons(ctx context.Context, userID string, since time.Time) ([]string, error) {
	return r.Reasons[userID], nil
}

func (r *InMemoryRepository) UpsertStats(ctx context.Context, s *Stats) error {
	copied := *s
	r.Stats[strings.ToLower(s.Category)] = &copied
	return nil
}

func (r *InMemoryRepository) CategoryWeeklyAverages(ctx context.Context, since time.Time) (map[string][]CategorySample, error) {
	return r.Samples, nil
}
