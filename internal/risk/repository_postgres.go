package risk

import (
	"context"

	"pantrypal/internal/inventory"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ItemsByUser(ctx context.Context, userID string) ([]*inventory.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			user_id,
			name,
			quantity,
			category,
			purchase_date,
			expiration_date,
			notes,
			created_at,
			updated_at
		FROM user_inventory
		WHERE user_id = $1
		ORDER BY expiration_date ASC NULLS LAST, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*inventory.Item

	for rows.Next() {
		var it inventory.Item
		if err := rows.Scan(
			&it.ID,
			&it.UserID,
			&it.Name,
			&it.Quantity,
			&it.Category,
			&it.PurchaseDate,
			&it.ExpirationDate,
			&it.Notes,
			&it.CreatedAt,
			&it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) UsageCountLast30Days(ctx context.Context, userID, itemName string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM food_usage_logs
		WHERE user_id = $1
		  AND LOWER(item_name) = LOWER($2)
		  AND used_at >= now() - INTERVAL '30 days'
	`, userID, itemName).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) UpsertScore(ctx context.Context, s *Score) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO expiration_risk_scores (
			inventory_item_id,
			user_id,
			risk_score,
			consumption_frequency,
			category_risk_factor,
			seasonal_factor,
			explanation,
			days_until_expiry,
			calculated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now())
		ON CONFLICT (inventory_item_id)
		DO UPDATE SET
			risk_score = EXCLUDED.risk_score,
			consumption_frequency = EXCLUDED.consumption_frequency,
			category_risk_factor = EXCLUDED.category_risk_factor,
			seasonal_factor = EXCLUDED.seasonal_factor,
			explanation = EXCLUDED.explanation,
			days_until_expiry = EXCLUDED.days_until_expiry,
			calculated_at = now()
		RETURNING id, calculated_at
	`,
		s.InventoryItemID,
		s.UserID,
		s.RiskScore,
		s.ConsumptionFrequency,
		s.CategoryRiskFactor,
		s.SeasonalFactor,
		s.Explanation,
		s.DaysUntilExpiry,
	).Scan(&s.ID, &s.CalculatedAt)
}

func (r *PostgresRepository) ScoresByUser(ctx context.Context, userID string) ([]*Score, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			inventory_item_id,
			user_id,
			risk_score,
			consumption_frequency,
			category_risk_factor,
			seasonal_factor,
			explanation,
			days_until_expiry,
			priority_rank,
			calculated_at
		FROM expiration_risk_scores
		WHERE user_id = $1
		ORDER BY risk_score DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []*Score

	for rows.Next() {
		var s Score
		if err := rows.Scan(
			&s.ID,
			&s.InventoryItemID,
			&s.UserID,
			&s.RiskScore,
			&s.ConsumptionFrequency,
			&s.CategoryRiskFactor,
			&s.SeasonalFactor,
			&s.Explanation,
			&s.DaysUntilExpiry,
			&s.PriorityRank,
			&s.CalculatedAt,
		); err != nil {
			return nil, err
		}
		scores = append(scores, &s)
	}

	return scores, rows.Err()
}

func (r *PostgresRepository) UserIDsWithInventory(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT user_id::text FROM user_inventory
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
