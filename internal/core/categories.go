package core

import "strings"

// CategoryWeight holds the static per-category factors used by the risk
// and waste calculations.
type CategoryWeight struct {
	RiskFactor       float64
	WasteRate        float64
	AvgShelfLifeDays int
}

// DefaultCategoryWeight is used for any category not in the table.
var DefaultCategoryWeight = CategoryWeight{
	RiskFactor:       1.0,
	WasteRate:        0.15,
	AvgShelfLifeDays: 14,
}

var categoryWeights = map[string]CategoryWeight{
	"dairy":     {RiskFactor: 1.3, WasteRate: 0.17, AvgShelfLifeDays: 10},
	"fruit":     {RiskFactor: 1.4, WasteRate: 0.25, AvgShelfLifeDays: 7},
	"vegetable": {RiskFactor: 1.4, WasteRate: 0.25, AvgShelfLifeDays: 7},
	"meat":      {RiskFactor: 1.5, WasteRate: 0.20, AvgShelfLifeDays: 5},
	"seafood":   {RiskFactor: 1.6, WasteRate: 0.22, AvgShelfLifeDays: 3},
	"bakery":    {RiskFactor: 1.2, WasteRate: 0.30, AvgShelfLifeDays: 5},
	"grains":    {RiskFactor: 0.6, WasteRate: 0.08, AvgShelfLifeDays: 180},
	"canned":    {RiskFactor: 0.4, WasteRate: 0.05, AvgShelfLifeDays: 365},
	"frozen":    {RiskFactor: 0.5, WasteRate: 0.10, AvgShelfLifeDays: 90},
	"beverages": {RiskFactor: 0.7, WasteRate: 0.10, AvgShelfLifeDays: 60},
	"snacks":    {RiskFactor: 0.7, WasteRate: 0.12, AvgShelfLifeDays: 45},
	"condiments": {
		RiskFactor:       0.5,
		WasteRate:        0.08,
		AvgShelfLifeDays: 180,
	},
}

// LookupCategory matches a free-text category case-insensitively
// against the static table. Unknown categories get the default weight.
func LookupCategory(category string) CategoryWeight {
	w, ok := categoryWeights[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return DefaultCategoryWeight
	}
	return w
}
