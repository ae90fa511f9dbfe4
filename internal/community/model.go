package community

import "time"

// Stats is one externally-maintained aggregate row: per-category
// average weekly waste for the whole community.
type Stats struct {
	ID             int       `json:"id"`
	Category       string    `json:"category"`
	AvgWeeklyGrams float64   `json:"avg_weekly_grams"`
	AvgWeeklyCost  float64   `json:"avg_weekly_cost"`
	SampleSize     int       `json:"sample_size"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CategoryComparison classifies one category the user holds inventory
// in against the community average.
type CategoryComparison struct {
	Category          string  `json:"category"`
	UserGrams         float64 `json:"user_grams"`
	CommunityAvgGrams float64 `json:"community_avg_grams"`
	Performance       string  `json:"performance"` // better | average | worse
}

// Comparison benchmarks one user against the community. The
// percentile is a documented 5-bucket approximation, not a true
// statistical percentile.
type Comparison struct {
	UserGrams         float64              `json:"user_grams"`
	UserCost          float64              `json:"user_cost"`
	CommunityAvgGrams float64              `json:"community_avg_grams"`
	CommunityAvgCost  float64              `json:"community_avg_cost"`
	Percentile        int                  `json:"percentile"`
	Categories        []CategoryComparison `json:"categories"`
}

// Insight is one actionable waste-reduction suggestion, either
// LLM-generated or rule-based.
type Insight struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
}
