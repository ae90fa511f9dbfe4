package core

import (
	"math"
	"time"
)

// DaysUntilExpiry returns the whole days left before an item expires,
// rounded up. Items with no expiration date fall back to fallbackDays
// (normally the category's average shelf life).
func DaysUntilExpiry(expiration *time.Time, fallbackDays int, now time.Time) int {
	if expiration == nil {
		return fallbackDays
	}
	return int(math.Ceil(expiration.Sub(now).Hours() / 24))
}

// IsExpired reports whether an item is already past its expiration.
// Expired items always get risk 100, priority 100 and waste
// probability 1.0 — every scoring path must go through this predicate
// instead of re-deriving the rule.
func IsExpired(daysUntilExpiry int) bool {
	return daysUntilExpiry <= 0
}
