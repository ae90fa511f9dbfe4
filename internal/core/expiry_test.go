package core

import (
	"testing"
	"time"
)

func TestDaysUntilExpiryRoundsUp(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	exp := now.Add(36 * time.Hour)
	if got := DaysUntilExpiry(&exp, 14, now); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}

	exp = now.Add(24 * time.Hour)
	if got := DaysUntilExpiry(&exp, 14, now); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	exp = now.Add(-1 * time.Hour)
	if got := DaysUntilExpiry(&exp, 14, now); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestDaysUntilExpiryFallsBackToShelfLife(t *testing.T) {
	now := time.Now()
	if got := DaysUntilExpiry(nil, 10, now); got != 10 {
		t.Fatalf("expected fallback 10, got %d", got)
	}
}

func TestIsExpiredBoundary(t *testing.T) {
	if !IsExpired(0) {
		t.Fatal("0 days left must count as expired")
	}
	if !IsExpired(-3) {
		t.Fatal("negative days must count as expired")
	}
	if IsExpired(1) {
		t.Fatal("1 day left must not count as expired")
	}
}

func TestLookupCategoryIsCaseInsensitive(t *testing.T) {
	a := LookupCategory("Dairy")
	b := LookupCategory("dairy")
	if a != b {
		t.Fatal("category match must be case-insensitive")
	}
}

func TestLookupCategoryDefault(t *testing.T) {
	w := LookupCategory("mystery goop")
	if w != DefaultCategoryWeight {
		t.Fatalf("unknown category must use default, got %+v", w)
	}
	if w.RiskFactor != 1.0 || w.WasteRate != 0.15 || w.AvgShelfLifeDays != 14 {
		t.Fatalf("unexpected default weight: %+v", w)
	}
}
