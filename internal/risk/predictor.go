package risk

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"pantrypal/internal/core"
	"pantrypal/internal/inventory"
	"pantrypal/internal/llm"
)

const usesPerWeekWindow = 30.0 / 7.0

// Predictor computes 0–100 expiration risk scores from expiry
// proximity, consumption frequency, category weight and seasonality.
type Predictor struct {
	repo Repository
	llm  llm.Client
	now  func() time.Time
}

func NewPredictor(repo Repository, llmClient llm.Client) *Predictor {
	return &Predictor{
		repo: repo,
		llm:  llmClient,
		now:  time.Now,
	}
}

// CalculateExpirationRisk scores a single item. Frequency lookup
// failures are non-fatal: an item with no usage data is treated as
// never consumed.
func (p *Predictor) CalculateExpirationRisk(ctx context.Context, userID string, item *inventory.Item) *Score {
	now := p.now()

	frequency := 0.0
	count, err := p.repo.UsageCountLast30Days(ctx, userID, item.Name)
	if err != nil {
		log.Printf("[RISK] usage lookup failed for %q, assuming never consumed: %v", item.Name, err)
	} else {
		frequency = float64(count) / usesPerWeekWindow
	}

	weight := core.LookupCategory(item.Category)
	seasonal := SeasonalFactor(item.Category, now.Month())
	days := core.DaysUntilExpiry(item.ExpirationDate, weight.AvgShelfLifeDays, now)

	score := &Score{
		InventoryItemID:      item.ID,
		UserID:               userID,
		ConsumptionFrequency: frequency,
		CategoryRiskFactor:   weight.RiskFactor,
		SeasonalFactor:       seasonal,
		DaysUntilExpiry:      days,
	}

	if core.IsExpired(days) {
		// Hard floor: expired items skip the weighted formula entirely.
		score.RiskScore = 100
	} else {
		expiryUrgency := math.Max(0, 100-3*float64(days))

		consumptionRisk := 80.0
		if frequency >= 0.5 {
			consumptionRisk = math.Max(0, 100-20*frequency)
		}

		quantityRisk := 0.0
		if item.Quantity > 5 {
			quantityRisk = 20.0
		}

		base := (0.5*expiryUrgency + 0.3*consumptionRisk + 0.2*quantityRisk) *
			weight.RiskFactor * seasonal

		score.RiskScore = clamp(int(math.Round(base)), 0, 100)
	}

	score.Explanation = p.explain(ctx, item, score)

	return score
}

// CalculateAllRisks scores every inventory item the user holds.
// The item fetch failing is fatal; individual scoring never is.
func (p *Predictor) CalculateAllRisks(ctx context.Context, userID string) ([]*Score, error) {
	items, err := p.repo.ItemsByUser(ctx, userID)
	if err != nil {
		log.Printf("[RISK] inventory fetch failed for user %s: %v", userID, err)
		return nil, err
	}

	scores := make([]*Score, 0, len(items))
	for _, item := range items {
		scores = append(scores, p.CalculateExpirationRisk(ctx, userID, item))
	}

	return scores, nil
}

// SaveRiskScores upserts each score keyed by inventory_item_id.
// Persistence failures propagate to the caller.
func (p *Predictor) SaveRiskScores(ctx context.Context, userID string, scores []*Score) error {
	for _, s := range scores {
		s.UserID = userID
		if err := p.repo.UpsertScore(ctx, s); err != nil {
			log.Printf("[RISK] failed to save score for item %d: %v", s.InventoryItemID, err)
			return err
		}
	}
	return nil
}

func (p *Predictor) ScoresByUser(ctx context.Context, userID string) ([]*Score, error) {
	return p.repo.ScoresByUser(ctx, userID)
}

// explain asks the LLM for a one-sentence explanation and falls back
// to a deterministic tiered message on any failure. LLM errors never
// reach the caller.
func (p *Predictor) explain(ctx context.Context, item *inventory.Item, s *Score) string {
	prompt := llm.BuildRiskExplanationPrompt(
		item.Name,
		item.Category,
		s.DaysUntilExpiry,
		s.ConsumptionFrequency,
		s.RiskScore,
	)

	text, err := p.llm.Complete(ctx, prompt)
	if err == nil && text != "" {
		return text
	}
	if err != nil && err != llm.ErrDisabled {
		log.Printf("[RISK] explanation generation failed, using fallback: %v", err)
	}

	return fallbackExplanation(item.Name, s)
}

func fallbackExplanation(name string, s *Score) string {
	switch {
	case s.RiskScore >= 80:
		return fmt.Sprintf(
			"%s is at high risk of being wasted: %d day(s) until expiry and only %.1f uses per week.",
			name, s.DaysUntilExpiry, s.ConsumptionFrequency)
	case s.RiskScore >= 50:
		return fmt.Sprintf(
			"%s is at medium risk: %d day(s) until expiry with %.1f uses per week. Plan to use it soon.",
			name, s.DaysUntilExpiry, s.ConsumptionFrequency)
	default:
		return fmt.Sprintf(
			"%s is at low risk: %d day(s) until expiry and a steady %.1f uses per week.",
			name, s.DaysUntilExpiry, s.ConsumptionFrequency)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
