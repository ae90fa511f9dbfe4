package risk

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pantrypal/internal/inventory"
	"pantrypal/internal/llm"
)

// fixed in winter so every seasonal factor is 1.0 unless a test wants otherwise
var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func testPredictor(repo *InMemoryRepository) *Predictor {
	p := NewPredictor(repo, llm.NewDisabledClient())
	p.now = func() time.Time { return testNow }
	return p
}

func daysFromNow(d int) *time.Time {
	t := testNow.AddDate(0, 0, d)
	return &t
}

func TestExpiredItemAlwaysScores100(t *testing.T) {
	repo := NewInMemoryRepository()
	p := testPredictor(repo)

	item := &inventory.Item{
		ID:             1,
		UserID:         "u1",
		Name:           "Milk",
		Category:       "Dairy",
		Quantity:       2,
		ExpirationDate: daysFromNow(-1),
	}

	score := p.CalculateExpirationRisk(context.Background(), "u1", item)

	if score.RiskScore != 100 {
		t.Fatalf("expired item must score 100, got %d", score.RiskScore)
	}
	if score.DaysUntilExpiry > 0 {
		t.Fatalf("expected non-positive days, got %d", score.DaysUntilExpiry)
	}
}

func TestWeightedFormula(t *testing.T) {
	repo := NewInMemoryRepository()
	p := testPredictor(repo)

	// unknown category: factor 1.0, seasonal 1.0 (winter).
	// days=10 -> urgency 70; freq 0 -> consumption 80; qty 2 -> quantity 0.
	// 0.5*70 + 0.3*80 = 59.
	item := &inventory.Item{
		ID:             2,
		UserID:         "u1",
		Name:           "Protein Bars",
		Category:       "mystery",
		Quantity:       2,
		ExpirationDate: daysFromNow(10),
	}

	score := p.CalculateExpirationRisk(context.Background(), "u1", item)
	if score.RiskScore != 59 {
		t.Fatalf("expected risk 59, got %d", score.RiskScore)
	}
}

func TestRiskScoreIsClamped(t *testing.T) {
	repo := NewInMemoryRepository()
	p := testPredictor(repo)
	p.now = func() time.Time {
		return time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC) // summer
	}

	// meat in summer: 1.5 * 1.2 = 1.8x. One day left, never used,
	// large quantity: raw base far exceeds 100.
	exp := time.Date(2025, 7, 16, 12, 0, 0, 0, time.UTC)
	item := &inventory.Item{
		ID:             3,
		UserID:         "u1",
		Name:           "Chicken",
		Category:       "Meat",
		Quantity:       10,
		ExpirationDate: &exp,
	}

	score := p.CalculateExpirationRisk(context.Background(), "u1", item)
	if score.RiskScore < 0 || score.RiskScore > 100 {
		t.Fatalf("risk must be clamped to [0,100], got %d", score.RiskScore)
	}
	if score.RiskScore != 100 {
		t.Fatalf("expected clamp to 100, got %d", score.RiskScore)
	}
}

func TestFrequencyLookupFailureIsNonFatal(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.UsageErr = errors.New("db down")
	p := testPredictor(repo)

	item := &inventory.Item{
		ID:             4,
		UserID:         "u1",
		Name:           "Milk",
		Category:       "Dairy",
		Quantity:       1,
		ExpirationDate: daysFromNow(5),
	}

	score := p.CalculateExpirationRisk(context.Background(), "u1", item)
	if score.ConsumptionFrequency != 0 {
		t.Fatalf("failed lookup must default frequency to 0, got %f", score.ConsumptionFrequency)
	}
}

func TestConsumptionFrequencyNormalization(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Usage["u1/Milk"] = 12 // 12 uses in 30 days = 2.8 uses/week
	p := testPredictor(repo)

	item := &inventory.Item{
		ID:             5,
		UserID:         "u1",
		Name:           "Milk",
		Category:       "Dairy",
		Quantity:       1,
		ExpirationDate: daysFromNow(5),
	}

	score := p.CalculateExpirationRisk(context.Background(), "u1", item)
	want := 12.0 / (30.0 / 7.0)
	if diff := score.ConsumptionFrequency - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected frequency %f, got %f", want, score.ConsumptionFrequency)
	}
}

func TestShelfLifeFallbackWhenNoExpiration(t *testing.T) {
	repo := NewInMemoryRepository()
	p := testPredictor(repo)

	item := &inventory.Item{
		ID:       6,
		UserID:   "u1",
		Name:     "Cheddar",
		Category: "Dairy", // avg shelf life 10 days
		Quantity: 1,
	}

	score := p.CalculateExpirationRisk(context.Background(), "u1", item)
	if score.DaysUntilExpiry != 10 {
		t.Fatalf("expected shelf-life fallback of 10 days, got %d", score.DaysUntilExpiry)
	}
}

func TestFallbackExplanationTiers(t *testing.T) {
	cases := []struct {
		risk int
		want string
	}{
		{90, "high risk"},
		{60, "medium risk"},
		{20, "low risk"},
	}

	for _, c := range cases {
		s := &Score{RiskScore: c.risk, DaysUntilExpiry: 3, ConsumptionFrequency: 1.2}
		text := fallbackExplanation("Milk", s)
		if !strings.Contains(text, "Milk") {
			t.Fatalf("explanation must cite item name: %q", text)
		}
		if !strings.Contains(text, c.want) {
			t.Fatalf("risk %d: expected %q in %q", c.risk, c.want, text)
		}
	}
}

func TestCalculateAllRisksPropagatesFetchError(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.ItemsErr = errors.New("db down")
	p := testPredictor(repo)

	if _, err := p.CalculateAllRisks(context.Background(), "u1"); err == nil {
		t.Fatal("expected item fetch error to propagate")
	}
}

func TestSaveRiskScoresPropagatesError(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.SaveErr = errors.New("db down")
	p := testPredictor(repo)

	scores := []*Score{{InventoryItemID: 1, RiskScore: 50}}
	if err := p.SaveRiskScores(context.Background(), "u1", scores); err == nil {
		t.Fatal("expected save error to propagate")
	}
}

func TestSaveRiskScoresUpsertsByItemID(t *testing.T) {
	repo := NewInMemoryRepository()
	p := testPredictor(repo)
	ctx := context.Background()

	first := []*Score{{InventoryItemID: 1, RiskScore: 40, Explanation: "old"}}
	if err := p.SaveRiskScores(ctx, "u1", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := []*Score{{InventoryItemID: 1, RiskScore: 70, Explanation: "new"}}
	if err := p.SaveRiskScores(ctx, "u1", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved := repo.Scores[1]
	if saved.RiskScore != 70 || saved.Explanation != "new" {
		t.Fatalf("upsert must overwrite on conflict, got %+v", saved)
	}
	if len(repo.Scores) != 1 {
		t.Fatalf("expected single row per item, got %d", len(repo.Scores))
	}
}
