package inventory

import "time"

// Item is one row of a user's pantry.
type Item struct {
	ID             int        `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Quantity       float64    `json:"quantity"`
	Category       string     `json:"category"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UsageLog records one consumption event. Risk scoring reads these to
// derive consumption frequency.
type UsageLog struct {
	ID           int       `json:"id"`
	UserID       string    `json:"user_id"`
	ItemName     string    `json:"item_name"`
	QuantityUsed float64   `json:"quantity_used"`
	UsedAt       time.Time `json:"used_at"`
}

// BulkResult summarizes a fire-and-collect bulk insert: every row is
// attempted independently and failures never abort the batch.
type BulkResult struct {
	Inserted int      `json:"inserted"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}
