package risk

import "time"

// Score is the computed expiration risk for one inventory item.
// Persisted with an upsert keyed by inventory_item_id; recomputation
// overwrites the previous row (last write wins).
type Score struct {
	ID                   int       `json:"id"`
	InventoryItemID      int       `json:"inventory_item_id"`
	UserID               string    `json:"user_id"`
	RiskScore            int       `json:"risk_score"`
	ConsumptionFrequency float64   `json:"consumption_frequency"`
	CategoryRiskFactor   float64   `json:"category_risk_factor"`
	SeasonalFactor       float64   `json:"seasonal_factor"`
	Explanation          string    `json:"explanation"`
	DaysUntilExpiry      int       `json:"days_until_expiry"`
	PriorityRank         *int      `json:"priority_rank,omitempty"`
	CalculatedAt         time.Time `json:"calculated_at"`
}
