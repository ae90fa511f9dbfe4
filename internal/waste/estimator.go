package waste

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"pantrypal/internal/core"
)

const (
	// monthlyFactor scales a weekly projection to a monthly one.
	monthlyFactor = 4.3

	// monthlyConfidencePenalty reflects the longer horizon.
	monthlyConfidencePenalty = 5

	// unpricedExpiredUnitCost is charged for expired items whose name
	// has no reference price.
	unpricedExpiredUnitCost = 2.00

	patternWindowDays   = 90
	categoryPatternMin  = 3
	reasonPatternMin    = 2
)

// Estimator projects grams and cost of food likely to be wasted and
// mines the waste ledger for recurring patterns.
type Estimator struct {
	repo Repository
	now  func() time.Time
}

func NewEstimator(repo Repository) *Estimator {
	return &Estimator{
		repo: repo,
		now:  time.Now,
	}
}

// EstimateCurrentWaste projects waste across the user's current
// inventory. Expired items contribute at full probability and rate.
func (e *Estimator) EstimateCurrentWaste(ctx context.Context, userID string) (*Estimate, error) {
	rows, err := e.repo.ItemsWithRiskPrice(ctx, userID)
	if err != nil {
		log.Printf("[WASTE] inventory fetch failed for user %s: %v", userID, err)
		return nil, err
	}

	now := e.now()
	est := &Estimate{
		ByCategory: make(map[string]CategoryBreakdown),
	}

	for _, row := range rows {
		weight := core.LookupCategory(row.Category)
		days := core.DaysUntilExpiry(row.ExpirationDate, weight.AvgShelfLifeDays, now)

		wasteProbability := float64(row.RiskScore) / 100
		wasteRate := weight.WasteRate
		if row.ExpirationDate != nil && core.IsExpired(days) {
			wasteProbability = 1.0
			wasteRate = 1.0
		}

		grams := row.Quantity * GramsPerUnit(row.Category) * wasteProbability * wasteRate
		cost := row.Quantity * row.UnitCost * wasteProbability * wasteRate

		est.TotalGrams += grams
		est.TotalCost += cost

		breakdown := est.ByCategory[row.Category]
		breakdown.Grams += grams
		breakdown.Cost += cost
		est.ByCategory[row.Category] = breakdown
	}

	est.Confidence = confidenceForSampleSize(len(rows))

	return est, nil
}

// confidenceForSampleSize is a step function over observed item
// count, a crude proxy for reliability.
func confidenceForSampleSize(n int) int {
	switch {
	case n >= 20:
		return 85
	case n >= 10:
		return 70
	case n >= 5:
		return 55
	default:
		return 40
	}
}

// GetWeeklyProjection returns today's cached weekly projection if one
// exists, otherwise computes and persists a fresh one.
func (e *Estimator) GetWeeklyProjection(ctx context.Context, userID string) (*Projection, error) {
	return e.projection(ctx, userID, "weekly")
}

// GetMonthlyProjection is the weekly projection scaled by 4.3 with a
// flat 5-point confidence penalty, cached per day-window like weekly.
func (e *Estimator) GetMonthlyProjection(ctx context.Context, userID string) (*Projection, error) {
	return e.projection(ctx, userID, "monthly")
}

func (e *Estimator) projection(ctx context.Context, userID, period string) (*Projection, error) {
	today := e.today()

	cached, err := e.repo.FreshProjection(ctx, userID, period, today)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	est, err := e.EstimateCurrentWaste(ctx, userID)
	if err != nil {
		return nil, err
	}

	proj := &Projection{
		UserID:         userID,
		Period:         period,
		Grams:          est.TotalGrams,
		Cost:           est.TotalCost,
		Confidence:     est.Confidence,
		ProjectionDate: today,
	}
	if period == "monthly" {
		proj.Grams = est.TotalGrams * monthlyFactor
		proj.Cost = est.TotalCost * monthlyFactor
		proj.Confidence = est.Confidence - monthlyConfidencePenalty
	}

	if err := e.repo.InsertProjection(ctx, proj); err != nil {
		return nil, err
	}

	return proj, nil
}

func (e *Estimator) today() time.Time {
	now := e.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// RecordWaste appends one fact to the waste ledger.
func (e *Estimator) RecordWaste(ctx context.Context, rec *Record) error {
	if rec.ItemName == "" {
		return errors.New("item name is required")
	}
	if rec.Grams <= 0 {
		return errors.New("grams must be positive")
	}
	if rec.Reason == "" {
		rec.Reason = "unknown"
	}
	if rec.WastedAt.IsZero() {
		rec.WastedAt = e.today()
	}

	if err := e.repo.InsertRecord(ctx, rec); err != nil {
		log.Printf("[WASTE] record insert failed for user %s: %v", rec.UserID, err)
		return err
	}
	return nil
}

// BulkRecord inserts records one by one; a failing row is counted
// and never aborts the rest of the batch.
func (e *Estimator) BulkRecord(ctx context.Context, userID string, records []*Record) BulkResult {
	result := BulkResult{}

	for i, rec := range records {
		rec.UserID = userID
		if err := e.RecordWaste(ctx, rec); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d (%s): %v", i, rec.ItemName, err))
			continue
		}
		result.Inserted++
	}

	return result
}

// AnalyzeWastePatterns groups the last 90 days of records by category
// and by reason. Categories need 3 occurrences to surface, reasons 2.
func (e *Estimator) AnalyzeWastePatterns(ctx context.Context, userID string) ([]*Pattern, error) {
	since := e.now().AddDate(0, 0, -patternWindowDays)
	records, err := e.repo.RecordsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]int)
	byReason := make(map[string]int)
	for _, rec := range records {
		byCategory[rec.Category]++
		byReason[rec.Reason]++
	}

	var patterns []*Pattern
	for category, count := range byCategory {
		if count < categoryPatternMin {
			continue
		}
		patterns = append(patterns, &Pattern{
			Kind:  "category",
			Key:   category,
			Count: count,
			Description: fmt.Sprintf(
				"You wasted %s items %d times in the last %d days.",
				category, count, patternWindowDays),
		})
	}
	for reason, count := range byReason {
		if count < reasonPatternMin {
			continue
		}
		patterns = append(patterns, &Pattern{
			Kind:  "reason",
			Key:   reason,
			Count: count,
			Description: fmt.Sprintf(
				"%q came up %d times as a waste reason in the last %d days.",
				reason, count, patternWindowDays),
		})
	}

	// deterministic output: most frequent first, key as tiebreak
	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Count != patterns[j].Count {
			return patterns[i].Count > patterns[j].Count
		}
		return patterns[i].Key < patterns[j].Key
	})

	return patterns, nil
}

// GetHistoricalWasteStats sums the ledger plus currently-expired but
// unrecorded inventory. Failures degrade to zero totals instead of
// erroring; this is a secondary read path.
func (e *Estimator) GetHistoricalWasteStats(ctx context.Context, userID string) *HistoricalStats {
	stats := &HistoricalStats{}

	grams, cost, count, err := e.repo.LedgerTotals(ctx, userID)
	if err != nil {
		log.Printf("[WASTE] ledger totals failed for user %s, returning zeros: %v", userID, err)
		return stats
	}
	stats.TotalGrams = grams
	stats.TotalCost = cost
	stats.RecordedCount = count

	rows, err := e.repo.ItemsWithRiskPrice(ctx, userID)
	if err != nil {
		log.Printf("[WASTE] expired inventory scan failed for user %s: %v", userID, err)
		return stats
	}

	now := e.now()
	for _, row := range rows {
		if row.ExpirationDate == nil {
			continue
		}
		days := core.DaysUntilExpiry(row.ExpirationDate, 0, now)
		if !core.IsExpired(days) {
			continue
		}

		unitCost := row.UnitCost
		if unitCost == 0 {
			unitCost = unpricedExpiredUnitCost
		}

		stats.TotalGrams += row.Quantity * GramsPerUnit(row.Category)
		stats.TotalCost += row.Quantity * unitCost
		stats.UnrecordedItems++
	}

	return stats
}
