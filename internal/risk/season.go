package risk

import (
	"strings"
	"time"
)

// Season is one of four fixed 3-month windows.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// SeasonForMonth maps a calendar month onto its season:
// Mar–May spring, Jun–Aug summer, Sep–Nov fall, everything else winter.
func SeasonForMonth(m time.Month) Season {
	switch {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.June && m <= time.August:
		return SeasonSummer
	case m >= time.September && m <= time.November:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// seasonalMultipliers raise or lower risk for categories that spoil
// faster (or slower) in a given season. Missing entries mean 1.0.
var seasonalMultipliers = map[Season]map[string]float64{
	SeasonSpring: {
		"fruit":     1.1,
		"vegetable": 1.1,
	},
	SeasonSummer: {
		"dairy":     1.3,
		"fruit":     1.4,
		"vegetable": 1.3,
		"meat":      1.2,
		"seafood":   1.3,
		"bakery":    1.2,
	},
	SeasonFall: {
		"fruit":     1.1,
		"vegetable": 1.1,
	},
	SeasonWinter: {
		"frozen": 0.9,
		"canned": 0.9,
	},
}

// SeasonalFactor returns the multiplier for a category in the season
// that contains the given month. Unmatched categories get 1.0.
func SeasonalFactor(category string, m time.Month) float64 {
	season := SeasonForMonth(m)
	factors, ok := seasonalMultipliers[season]
	if !ok {
		return 1.0
	}

	f, ok := factors[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return 1.0
	}
	return f
}
