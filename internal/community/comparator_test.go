package community

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pantrypal/internal/llm"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func testComparator(repo *InMemoryRepository) *Comparator {
	c := NewComparator(repo, llm.NewDisabledClient())
	c.now = func() time.Time { return testNow }
	return c
}

func TestCalculatePercentileBuckets(t *testing.T) {
	cases := []struct {
		user, avg float64
		want      int
	}{
		{40, 100, 90},   // 0.4x
		{50, 100, 90},   // boundary 0.5
		{75, 100, 75},   // boundary 0.75
		{90, 100, 50},   // 0.9x
		{100, 100, 50},  // boundary 1.0
		{125, 100, 30},  // boundary 1.25
		{130, 100, 10},  // 1.3x
		{500, 100, 10},
	}
	for _, tc := range cases {
		if got := CalculatePercentile(tc.user, tc.avg); got != tc.want {
			t.Errorf("CalculatePercentile(%v, %v) = %d, want %d", tc.user, tc.avg, got, tc.want)
		}
	}
}

func TestCalculatePercentileNoCommunityData(t *testing.T) {
	if got := CalculatePercentile(400, 0); got != 50 {
		t.Fatalf("expected neutral 50 with no community data, got %d", got)
	}
}

func TestCompareToCommunityClassifiesCategories(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Stats["dairy"] = &Stats{Category: "dairy", AvgWeeklyGrams: 200, AvgWeeklyCost: 4}
	repo.Stats["fruit"] = &Stats{Category: "fruit", AvgWeeklyGrams: 300, AvgWeeklyCost: 3}
	repo.Stats["meat"] = &Stats{Category: "meat", AvgWeeklyGrams: 100, AvgWeeklyCost: 6}
	repo.Categories["u1"] = []string{"dairy", "fruit", "meat"}
	repo.CategoryGrams["u1"] = map[string]float64{
		"dairy": 100, // < 0.8x of 200
		"fruit": 290, // within 0.8x..1.2x of 300
		"meat":  150, // > 1.2x of 100
	}

	comp, err := testComparator(repo).CompareToCommunity(context.Background(), "u1", 540, 10)
	if err != nil {
		t.Fatal(err)
	}

	if comp.CommunityAvgGrams != 600 {
		t.Fatalf("expected community avg 600, got %v", comp.CommunityAvgGrams)
	}
	if comp.Percentile != 50 {
		t.Fatalf("540/600 = 0.9x should land in the 50 bucket, got %d", comp.Percentile)
	}

	want := map[string]string{"dairy": "better", "fruit": "average", "meat": "worse"}
	if len(comp.Categories) != len(want) {
		t.Fatalf("expected %d category comparisons, got %d", len(want), len(comp.Categories))
	}
	for _, cc := range comp.Categories {
		if cc.Performance != want[cc.Category] {
			t.Errorf("%s: got %q, want %q", cc.Category, cc.Performance, want[cc.Category])
		}
	}
}

func TestCompareToCommunitySkipsCategoriesWithoutStats(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Stats["dairy"] = &Stats{Category: "dairy", AvgWeeklyGrams: 200}
	repo.Categories["u1"] = []string{"dairy", "exotic"}
	repo.CategoryGrams["u1"] = map[string]float64{"dairy": 50}

	comp, err := testComparator(repo).CompareToCommunity(context.Background(), "u1", 50, 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(comp.Categories) != 1 || comp.Categories[0].Category != "dairy" {
		t.Fatalf("expected only dairy to be compared, got %+v", comp.Categories)
	}
}

func TestCompareToCommunityCategoryLookupFailureDegrades(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Stats["dairy"] = &Stats{Category: "dairy", AvgWeeklyGrams: 200}
	repo.CategoriesErr = errors.New("db down")

	comp, err := testComparator(repo).CompareToCommunity(context.Background(), "u1", 100, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.Categories) != 0 {
		t.Fatalf("expected empty category list on lookup failure, got %+v", comp.Categories)
	}
	if comp.Percentile != 90 {
		t.Fatalf("overall comparison should still be computed, got percentile %d", comp.Percentile)
	}
}

func TestCompareToCommunityStatsFailurePropagates(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.StatsErr = errors.New("db down")

	if _, err := testComparator(repo).CompareToCommunity(context.Background(), "u1", 100, 2); err == nil {
		t.Fatal("expected aggregate read failure to propagate")
	}
}

func TestFallbackInsightsCoverAllThreeRules(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Reasons["u1"] = []string{"forgot", "expired", "forgot"}
	c := testComparator(repo)

	comparison := &Comparison{
		UserGrams:         800,
		CommunityAvgGrams: 600,
		Percentile:        30,
		Categories: []CategoryComparison{
			{Category: "dairy", UserGrams: 300, CommunityAvgGrams: 200, Performance: "worse"},
			{Category: "meat", UserGrams: 400, CommunityAvgGrams: 100, Performance: "worse"},
			{Category: "fruit", UserGrams: 100, CommunityAvgGrams: 300, Performance: "better"},
		},
	}

	insights := c.GenerateInsights(context.Background(), "u1", comparison)

	if len(insights) != 3 {
		t.Fatalf("expected 3 fallback insights, got %d", len(insights))
	}
	if !strings.Contains(insights[0].Title, "community average") {
		t.Errorf("first insight should be the overall one, got %q", insights[0].Title)
	}
	// meat has the larger gap (300g over) and must win over dairy (100g over).
	if !strings.Contains(insights[1].Title, "meat") {
		t.Errorf("worst-category insight should name meat, got %q", insights[1].Title)
	}
	if !strings.Contains(insights[2].Title, "forgot") {
		t.Errorf("reason insight should name the most frequent reason, got %q", insights[2].Title)
	}
	for _, ins := range insights {
		if len(ins.ActionItems) == 0 {
			t.Errorf("insight %q has no action items", ins.Title)
		}
	}
}

func TestFallbackInsightsSkipRulesWithoutData(t *testing.T) {
	repo := NewInMemoryRepository()
	c := testComparator(repo)

	// Percentile >= 50, no "worse" category, no reasons: nothing to say.
	comparison := &Comparison{
		UserGrams:         100,
		CommunityAvgGrams: 600,
		Percentile:        90,
		Categories: []CategoryComparison{
			{Category: "dairy", UserGrams: 50, CommunityAvgGrams: 200, Performance: "better"},
		},
	}

	if insights := c.GenerateInsights(context.Background(), "u1", comparison); len(insights) != 0 {
		t.Fatalf("expected no insights, got %d", len(insights))
	}
}

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func TestGenerateInsightsUsesLLMWhenValid(t *testing.T) {
	repo := NewInMemoryRepository()
	c := testComparator(repo)
	c.llm = &stubLLM{reply: `[{"title":"Shop less often","description":"Smaller trips reduce spoilage.","action_items":["Buy dairy twice a week"]}]`}

	insights := c.GenerateInsights(context.Background(), "u1", &Comparison{Percentile: 30})

	if len(insights) != 1 || insights[0].Title != "Shop less often" {
		t.Fatalf("expected the model insight to be used, got %+v", insights)
	}
}

func TestGenerateInsightsFallsBackOnMalformedReply(t *testing.T) {
	repo := NewInMemoryRepository()
	c := testComparator(repo)
	c.llm = &stubLLM{reply: "I think you waste too much food."}

	insights := c.GenerateInsights(context.Background(), "u1", &Comparison{
		UserGrams:         800,
		CommunityAvgGrams: 600,
		Percentile:        30,
	})

	if len(insights) != 1 {
		t.Fatalf("expected the rule-based overall insight, got %d", len(insights))
	}
	if !strings.Contains(insights[0].Title, "community average") {
		t.Fatalf("unexpected fallback insight %q", insights[0].Title)
	}
}

func TestRecomputeStatsSkipsThinSamples(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Samples = map[string][]CategorySample{
		"dairy": {
			{UserID: "u1", Grams: 100, Cost: 2},
			{UserID: "u2", Grams: 200, Cost: 4},
			{UserID: "u3", Grams: 300, Cost: 6},
		},
		"caviar": {
			{UserID: "u1", Grams: 50, Cost: 40},
		},
	}

	if err := testComparator(repo).RecomputeStats(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, ok := repo.Stats["caviar"]; ok {
		t.Fatal("category with fewer than 3 samples must not be published")
	}

	dairy, ok := repo.Stats["dairy"]
	if !ok {
		t.Fatal("dairy aggregate missing")
	}
	if dairy.AvgWeeklyGrams != 200 || dairy.AvgWeeklyCost != 4 {
		t.Fatalf("expected avg 200g/$4, got %vg/$%v", dairy.AvgWeeklyGrams, dairy.AvgWeeklyCost)
	}
	if dairy.SampleSize != 3 {
		t.Fatalf("expected sample size 3, got %d", dairy.SampleSize)
	}
}
