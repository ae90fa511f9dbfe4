package ranking

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"pantrypal/internal/core"
)

// Service blends FIFO (expiry-order) scores with AI risk scores into
// a consumption priority ranking.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// PrioritizeItems returns the user's inventory sorted by descending
// priority with dense ranks 1..N. Ranks are written back to the risk
// score rows best-effort; a write failure never fails the call.
func (s *Service) PrioritizeItems(ctx context.Context, userID string) ([]*PrioritizedItem, error) {
	rows, err := s.repo.ItemsWithRisk(ctx, userID)
	if err != nil {
		log.Printf("[RANKING] inventory fetch failed for user %s: %v", userID, err)
		return nil, err
	}

	now := s.now()
	items := make([]*PrioritizedItem, 0, len(rows))

	for _, row := range rows {
		weight := core.LookupCategory(row.Category)
		days := core.DaysUntilExpiry(row.ExpirationDate, weight.AvgShelfLifeDays, now)

		item := &PrioritizedItem{
			ItemID:          row.ItemID,
			Name:            row.Name,
			Category:        row.Category,
			Quantity:        row.Quantity,
			ExpirationDate:  row.ExpirationDate,
			DaysUntilExpiry: days,
			RiskScore:       row.RiskScore,
			FIFOScore:       fifoScore(days, row.ExpirationDate != nil),
		}

		if row.ExpirationDate != nil && core.IsExpired(days) {
			// Same hard floor as the risk formula, applied independently.
			item.PriorityScore = 100
		} else {
			item.PriorityScore = 0.4*float64(item.FIFOScore) + 0.6*float64(item.RiskScore)
		}

		item.Recommendation = recommendation(item)
		items = append(items, item)
	}

	// Stable sort: ties keep input (expiry) order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})

	failed := 0
	for i, item := range items {
		item.Rank = i + 1
		if err := s.repo.SetPriorityRank(ctx, item.ItemID, item.Rank); err != nil {
			failed++
		}
	}
	if failed > 0 {
		log.Printf("[RANKING] rank write-back failed for %d of %d items (user %s)",
			failed, len(items), userID)
	}

	return items, nil
}

// GetTopPriorityItems returns the first limit items of the ranking.
func (s *Service) GetTopPriorityItems(ctx context.Context, userID string, limit int) ([]*PrioritizedItem, error) {
	items, err := s.PrioritizeItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// fifoScore buckets urgency purely by how soon an item expires.
// Items without an expiration date score a flat 30.
func fifoScore(daysUntilExpiry int, hasExpiration bool) int {
	if !hasExpiration {
		return 30
	}
	switch {
	case daysUntilExpiry <= 0:
		return 100
	case daysUntilExpiry <= 2:
		return 95
	case daysUntilExpiry <= 5:
		return 85
	case daysUntilExpiry <= 7:
		return 70
	case daysUntilExpiry <= 14:
		return 50
	default:
		return 30
	}
}

func recommendation(item *PrioritizedItem) string {
	if item.ExpirationDate != nil && core.IsExpired(item.DaysUntilExpiry) {
		return fmt.Sprintf(
			"EXPIRED: do not eat %s. Divert it to waste-to-asset instead.",
			item.Name)
	}

	switch {
	case item.PriorityScore >= 80:
		return fmt.Sprintf("Urgent: consume %s now, before it spoils.", item.Name)
	case item.PriorityScore >= 60:
		return fmt.Sprintf("Plan to use %s within the next 2-3 days.", item.Name)
	case item.PriorityScore >= 40:
		return fmt.Sprintf("Include %s in this week's meals.", item.Name)
	default:
		return fmt.Sprintf("%s is stable; low priority for now.", item.Name)
	}
}
