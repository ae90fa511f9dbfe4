package waste

import "time"

// CategoryBreakdown is the per-category slice of an estimate.
type CategoryBreakdown struct {
	Grams float64 `json:"grams"`
	Cost  float64 `json:"cost"`
}

// Estimate is a projection of how much currently-held inventory will
// go unused. Computed on demand, never persisted directly.
type Estimate struct {
	TotalGrams float64                      `json:"total_grams"`
	TotalCost  float64                      `json:"total_cost"`
	Confidence int                          `json:"confidence"`
	ByCategory map[string]CategoryBreakdown `json:"by_category"`
}

// Projection is a persisted weekly or monthly estimate, cached per
// day-window.
type Projection struct {
	ID             int       `json:"id"`
	UserID         string    `json:"user_id"`
	Period         string    `json:"period"` // weekly | monthly
	Grams          float64   `json:"grams"`
	Cost           float64   `json:"cost"`
	Confidence     int       `json:"confidence"`
	ProjectionDate time.Time `json:"projection_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// Record is one user-entered waste fact; the ledger is append-only.
type Record struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	ItemName  string    `json:"item_name"`
	Category  string    `json:"category"`
	Grams     float64   `json:"grams"`
	Cost      float64   `json:"cost"`
	Reason    string    `json:"reason"`
	WastedAt  time.Time `json:"wasted_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Pattern is a recurring waste behavior mined from the last 90 days
// of records.
type Pattern struct {
	Kind        string `json:"kind"` // category | reason
	Key         string `json:"key"`
	Count       int    `json:"count"`
	Description string `json:"description"`
}

// HistoricalStats blends the ledger with a live estimate of expired
// inventory not yet recorded as waste.
type HistoricalStats struct {
	TotalGrams      float64 `json:"total_grams"`
	TotalCost       float64 `json:"total_cost"`
	RecordedCount   int     `json:"recorded_count"`
	UnrecordedItems int     `json:"unrecorded_expired_items"`
}

// ItemWithRiskPrice joins an inventory row with its risk score
// (default 50) and reference unit cost (0 when the name is unpriced).
type ItemWithRiskPrice struct {
	ItemID         int
	Name           string
	Category       string
	Quantity       float64
	ExpirationDate *time.Time
	RiskScore      int
	UnitCost       float64
}

// BulkResult summarizes a fire-and-collect bulk record insert.
type BulkResult struct {
	Inserted int      `json:"inserted"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}
