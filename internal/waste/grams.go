package waste

import "strings"

// defaultGramsPerUnit is the estimate for categories not in the table.
const defaultGramsPerUnit = 100.0

// gramsPerUnitByCategory is a fixed conversion from "one unit" of a
// category to grams. Crude, but consistent across the estimator.
var gramsPerUnitByCategory = map[string]float64{
	"fruit":      150,
	"vegetable":  120,
	"dairy":      200,
	"meat":       250,
	"seafood":    200,
	"bakery":     80,
	"grains":     400,
	"canned":     300,
	"frozen":     350,
	"beverages":  500,
	"snacks":     60,
	"condiments": 30,
}

// GramsPerUnit returns the estimated grams per unit for a category,
// matched case-insensitively.
func GramsPerUnit(category string) float64 {
	g, ok := gramsPerUnitByCategory[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return defaultGramsPerUnit
	}
	return g
}
