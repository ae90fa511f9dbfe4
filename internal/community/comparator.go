package community

import (
	"context"
	"fmt"
	"log"
	"time"

	"pantrypal/internal/llm"
)

const (
	comparisonWindowDays = 30
	recomputeWindowDays  = 90

	// Minimum users per category before the aggregate is trustworthy.
	minSampleSize = 3
)

// Comparator benchmarks a user's waste against the community
// aggregates and produces insights.
type Comparator struct {
	repo Repository
	llm  llm.Client
	now  func() time.Time
}

func NewComparator(repo Repository, llmClient llm.Client) *Comparator {
	return &Comparator{
		repo: repo,
		llm:  llmClient,
		now:  time.Now,
	}
}

// CalculatePercentile buckets a user's waste against the community
// average. Lower waste is better. This is a documented 5-bucket
// approximation, not a true percentile.
func CalculatePercentile(userWaste, communityAvg float64) int {
	if communityAvg <= 0 {
		return 50
	}

	ratio := userWaste / communityAvg
	switch {
	case ratio <= 0.5:
		return 90
	case ratio <= 0.75:
		return 75
	case ratio <= 1.0:
		return 50
	case ratio <= 1.25:
		return 30
	default:
		return 10
	}
}

// CompareToCommunity benchmarks the given weekly waste figures. The
// aggregate read is a primary path and propagates; the per-category
// comparison is best-effort and degrades to an empty list.
func (c *Comparator) CompareToCommunity(ctx context.Context, userID string, userGrams, userCost float64) (*Comparison, error) {
	stats, err := c.repo.AllStats(ctx)
	if err != nil {
		log.Printf("[COMMUNITY] stats fetch failed: %v", err)
		return nil, err
	}

	var avgGrams, avgCost float64
	for _, s := range stats {
		avgGrams += s.AvgWeeklyGrams
		avgCost += s.AvgWeeklyCost
	}

	comparison := &Comparison{
		UserGrams:         userGrams,
		UserCost:          userCost,
		CommunityAvgGrams: avgGrams,
		CommunityAvgCost:  avgCost,
		Percentile:        CalculatePercentile(userGrams, avgGrams),
		Categories:        c.compareCategories(ctx, userID),
	}

	return comparison, nil
}

func (c *Comparator) compareCategories(ctx context.Context, userID string) []CategoryComparison {
	categories, err := c.repo.UserCategories(ctx, userID)
	if err != nil {
		log.Printf("[COMMUNITY] category lookup failed for user %s: %v", userID, err)
		return []CategoryComparison{}
	}

	since := c.now().AddDate(0, 0, -comparisonWindowDays)
	userGrams, err := c.repo.UserCategoryGrams(ctx, userID, since)
	if err != nil {
		log.Printf("[COMMUNITY] user waste lookup failed for user %s: %v", userID, err)
		return []CategoryComparison{}
	}

	comparisons := make([]CategoryComparison, 0, len(categories))
	for _, category := range categories {
		stat, err := c.repo.StatsForCategory(ctx, category)
		if err != nil || stat == nil {
			continue
		}

		grams := userGrams[category]
		performance := "average"
		switch {
		case grams < 0.8*stat.AvgWeeklyGrams:
			performance = "better"
		case grams > 1.2*stat.AvgWeeklyGrams:
			performance = "worse"
		}

		comparisons = append(comparisons, CategoryComparison{
			Category:          category,
			UserGrams:         grams,
			CommunityAvgGrams: stat.AvgWeeklyGrams,
			Performance:       performance,
		})
	}

	return comparisons
}

// GenerateInsights asks the LLM for up to 3 structured insights and
// falls back to rule-based ones on any call or parse failure. Errors
// never reach the caller.
func (c *Comparator) GenerateInsights(ctx context.Context, userID string, comparison *Comparison) []*Insight {
	since := c.now().AddDate(0, 0, -comparisonWindowDays)
	reasons, err := c.repo.RecentReasons(ctx, userID, since)
	if err != nil {
		reasons = nil
	}

	var worst []string
	for _, cc := range comparison.Categories {
		if cc.Performance == "worse" {
			worst = append(worst, cc.Category)
		}
	}

	prompt := llm.BuildInsightsPrompt(
		comparison.Percentile,
		comparison.UserGrams,
		comparison.CommunityAvgGrams,
		worst,
		reasons,
	)

	raw, err := c.llm.Complete(ctx, prompt)
	if err == nil {
		var insights []*Insight
		if decodeErr := llm.DecodeJSON(raw, &insights); decodeErr == nil && len(insights) > 0 {
			if len(insights) > 3 {
				insights = insights[:3]
			}
			return insights
		} else if decodeErr != nil {
			log.Printf("[COMMUNITY] insight parse failed (%v), using rule-based fallback", decodeErr)
		}
	} else if err != llm.ErrDisabled {
		log.Printf("[COMMUNITY] insight generation failed (%v), using rule-based fallback", err)
	}

	return c.fallbackInsights(comparison, reasons)
}

// fallbackInsights produces up to 3 deterministic insights: overall
// performance, worst category, most frequent recent reason.
func (c *Comparator) fallbackInsights(comparison *Comparison, reasons []string) []*Insight {
	var insights []*Insight

	if comparison.Percentile < 50 {
		insights = append(insights, &Insight{
			Title: "You waste more than the community average",
			Description: fmt.Sprintf(
				"Your weekly waste of %.0f grams is above the community average of %.0f grams.",
				comparison.UserGrams, comparison.CommunityAvgGrams),
			ActionItems: []string{
				"Check your priority list before shopping",
				"Log consumption so risk scores stay accurate",
			},
		})
	}

	if worst := worstCategory(comparison.Categories); worst != nil {
		insights = append(insights, &Insight{
			Title: fmt.Sprintf("%s is your biggest problem category", worst.Category),
			Description: fmt.Sprintf(
				"You waste %.0f grams of %s per week against a community average of %.0f grams.",
				worst.UserGrams, worst.Category, worst.CommunityAvgGrams),
			ActionItems: []string{
				fmt.Sprintf("Buy smaller quantities of %s", worst.Category),
				"Freeze what you cannot use in time",
			},
		})
	}

	if reason := mostFrequentReason(reasons); reason != "" {
		insights = append(insights, &Insight{
			Title: fmt.Sprintf("%q keeps causing waste", reason),
			Description: fmt.Sprintf(
				"%q is your most common waste reason over the last %d days.",
				reason, comparisonWindowDays),
			ActionItems: []string{
				"Plan meals around items expiring soonest",
			},
		})
	}

	return insights
}

// worstCategory picks the "worse" category with the largest gap over
// the community average, nil when there is none.
func worstCategory(categories []CategoryComparison) *CategoryComparison {
	var worst *CategoryComparison
	for i := range categories {
		cc := &categories[i]
		if cc.Performance != "worse" {
			continue
		}
		if worst == nil || cc.UserGrams-cc.CommunityAvgGrams > worst.UserGrams-worst.CommunityAvgGrams {
			worst = cc
		}
	}
	return worst
}

func mostFrequentReason(reasons []string) string {
	counts := make(map[string]int)
	best := ""
	for _, reason := range reasons {
		counts[reason]++
		if best == "" || counts[reason] > counts[best] {
			best = reason
		}
	}
	return best
}

// GetCommunityAverages returns the raw aggregate table.
func (c *Comparator) GetCommunityAverages(ctx context.Context) ([]*Stats, error) {
	return c.repo.AllStats(ctx)
}

// RecomputeStats rebuilds the aggregate table from the last 90 days
// of waste records. Categories with fewer than 3 contributing users
// are skipped rather than published with a thin sample.
func (c *Comparator) RecomputeStats(ctx context.Context) error {
	since := c.now().AddDate(0, 0, -recomputeWindowDays)

	samples, err := c.repo.CategoryWeeklyAverages(ctx, since)
	if err != nil {
		return err
	}

	for category, users := range samples {
		if len(users) < minSampleSize {
			log.Printf("[COMMUNITY] skipping %s (samples=%d)", category, len(users))
			continue
		}

		var grams, cost float64
		for _, u := range users {
			grams += u.Grams
			cost += u.Cost
		}
		n := float64(len(users))

		stat := &Stats{
			Category:       category,
			AvgWeeklyGrams: grams / n,
			AvgWeeklyCost:  cost / n,
			SampleSize:     len(users),
		}

		log.Printf("[COMMUNITY] %s -> avg=%.1fg/$%.2f samples=%d",
			category, stat.AvgWeeklyGrams, stat.AvgWeeklyCost, stat.SampleSize)

		if err := c.repo.UpsertStats(ctx, stat); err != nil {
			return err
		}
	}

	return nil
}
