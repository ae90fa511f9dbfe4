package ranking

import "time"

// ItemWithRisk is one inventory row left-joined with its risk score
// (50 when no score has been computed yet).
type ItemWithRisk struct {
	ItemID         int
	Name           string
	Category       string
	Quantity       float64
	ExpirationDate *time.Time
	RiskScore      int
}

// PrioritizedItem is the consumption-order recommendation for one
// item. Derived per call; only the rank is written back.
type PrioritizedItem struct {
	ItemID          int        `json:"item_id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Quantity        float64    `json:"quantity"`
	ExpirationDate  *time.Time `json:"expiration_date,omitempty"`
	DaysUntilExpiry int        `json:"days_until_expiry"`
	RiskScore       int        `json:"risk_score"`
	FIFOScore       int        `json:"fifo_score"`
	PriorityScore   float64    `json:"priority_score"`
	Rank            int        `json:"rank"`
	Recommendation  string     `json:"recommendation"`
}
