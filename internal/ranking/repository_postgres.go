package ranking

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ItemsWithRisk(ctx context.Context, userID string) ([]*ItemWithRisk, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			i.id,
			i.name,
			i.category,
			i.quantity,
			i.expiration_date,
			COALESCE(s.risk_score, 50)::int
		FROM user_inventory i
		LEFT JOIN expiration_risk_scores s
		  ON s.inventory_item_id = i.id
		WHERE i.user_id = $1
		ORDER BY i.expiration_date ASC NULLS LAST, i.id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ItemWithRisk

	for rows.Next() {
		var it ItemWithRisk
		if err := rows.Scan(
			&it.ItemID,
			&it.Name,
			&it.Category,
			&it.Quantity,
			&it.ExpirationDate,
			&it.RiskScore,
		); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) SetPriorityRank(ctx context.Context, itemID, rank int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE expiration_risk_scores
		SET priority_rank = $1
		WHERE inventory_item_id = $2
	`, rank, itemID)
	return err
}
