package ranking

import (
	"context"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func testService(repo *InMemoryRepository) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return testNow }
	return s
}

func expiring(days int) *time.Time {
	t := testNow.AddDate(0, 0, days)
	return &t
}

func TestFIFOScoreBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want int
	}{
		{0, 100},
		{-3, 100},
		{1, 95},
		{2, 95},
		{3, 85},
		{5, 85},
		{6, 70},
		{7, 70},
		{8, 50},
		{14, 50},
		{15, 30},
		{60, 30},
	}

	for _, c := range cases {
		if got := fifoScore(c.days, true); got != c.want {
			t.Fatalf("fifoScore(%d) = %d, want %d", c.days, got, c.want)
		}
	}

	if got := fifoScore(1, false); got != 30 {
		t.Fatalf("no expiration date must score flat 30, got %d", got)
	}
}

func TestExpiredItemForcesPriority100(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Rows = []*ItemWithRisk{
		{ItemID: 1, Name: "Milk", Category: "Dairy", Quantity: 2, ExpirationDate: expiring(-1), RiskScore: 10},
	}
	s := testService(repo)

	items, err := s.PrioritizeItems(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := items[0]
	if item.PriorityScore != 100 {
		t.Fatalf("expired item must force priority 100, got %f", item.PriorityScore)
	}
	if item.FIFOScore != 100 {
		t.Fatalf("expired item must get FIFO 100, got %d", item.FIFOScore)
	}
	if !strings.HasPrefix(item.Recommendation, "EXPIRED") {
		t.Fatalf("recommendation must begin with EXPIRED, got %q", item.Recommendation)
	}
}

func TestPriorityBlend(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Rows = []*ItemWithRisk{
		{ItemID: 1, Name: "Yogurt", Category: "Dairy", Quantity: 1, ExpirationDate: expiring(4), RiskScore: 60},
	}
	s := testService(repo)

	items, _ := s.PrioritizeItems(context.Background(), "u1")

	// fifo 85, risk 60: 0.4*85 + 0.6*60 = 70
	if items[0].PriorityScore != 70 {
		t.Fatalf("expected priority 70, got %f", items[0].PriorityScore)
	}
}

func TestRanksAreDenseAndSorted(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Rows = []*ItemWithRisk{
		{ItemID: 1, Name: "Milk", Category: "Dairy", Quantity: 1, ExpirationDate: expiring(1), RiskScore: 90},
		{ItemID: 2, Name: "Yogurt", Category: "Dairy", Quantity: 1, ExpirationDate: expiring(4), RiskScore: 60},
		{ItemID: 3, Name: "Apples", Category: "Fruit", Quantity: 3, ExpirationDate: expiring(10), RiskScore: 40},
		{ItemID: 4, Name: "Rice", Category: "Grains", Quantity: 1, RiskScore: 20},
	}
	s := testService(repo)

	items, err := s.PrioritizeItems(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int]bool)
	for i, item := range items {
		if item.Rank != i+1 {
			t.Fatalf("ranks must be dense 1..N: position %d has rank %d", i, item.Rank)
		}
		if seen[item.Rank] {
			t.Fatalf("duplicate rank %d", item.Rank)
		}
		seen[item.Rank] = true

		if i > 0 && items[i-1].PriorityScore < item.PriorityScore {
			t.Fatalf("output not sorted descending at position %d", i)
		}
	}
}

func TestMissingRiskScoreDefaultsTo50(t *testing.T) {
	repo := NewInMemoryRepository()
	// The SQL COALESCEs missing scores to 50; the memory repo carries
	// the default the same way.
	repo.Rows = []*ItemWithRisk{
		{ItemID: 1, Name: "Bread", Category: "Bakery", Quantity: 1, ExpirationDate: expiring(4), RiskScore: 50},
	}
	s := testService(repo)

	items, _ := s.PrioritizeItems(context.Background(), "u1")

	// fifo 85, risk 50: 0.4*85 + 0.6*50 = 64
	if items[0].PriorityScore != 64 {
		t.Fatalf("expected priority 64, got %f", items[0].PriorityScore)
	}
}

func TestRankWriteBackFailureIsSwallowed(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Rows = []*ItemWithRisk{
		{ItemID: 1, Name: "Milk", Category: "Dairy", Quantity: 1, ExpirationDate: expiring(1), RiskScore: 90},
		{ItemID: 2, Name: "Yogurt", Category: "Dairy", Quantity: 1, ExpirationDate: expiring(4), RiskScore: 60},
	}
	repo.RankErrs[1] = errRankWrite
	s := testService(repo)

	items, err := s.PrioritizeItems(context.Background(), "u1")
	if err != nil {
		t.Fatalf("write-back failure must not fail the call: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected full result despite write failure, got %d items", len(items))
	}
	if repo.Ranks[2] != 2 {
		t.Fatalf("other items must still get their rank written, got %v", repo.Ranks)
	}
}

func TestEmptyInventory(t *testing.T) {
	repo := NewInMemoryRepository()
	s := testService(repo)

	items, err := s.PrioritizeItems(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty result, got %d items", len(items))
	}
}

func TestGetTopPriorityItemsLimits(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Rows = []*ItemWithRisk{
		{ItemID: 1, Name: "Milk", Category: "Dairy", Quantity: 1, ExpirationDate: expiring(1), RiskScore: 90},
		{ItemID: 2, Name: "Yogurt", Category: "Dairy", Quantity: 1, ExpirationDate: expiring(4), RiskScore: 60},
		{ItemID: 3, Name: "Rice", Category: "Grains", Quantity: 1, RiskScore: 20},
	}
	s := testService(repo)

	items, err := s.GetTopPriorityItems(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Milk" {
		t.Fatalf("expected Milk first, got %s", items[0].Name)
	}
}
