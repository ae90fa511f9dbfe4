package waste

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ItemsWithRiskPrice(ctx context.Context, userID string) ([]*ItemWithRiskPrice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			i.id,
			i.name,
			i.category,
			i.quantity,
			i.expiration_date,
			COALESCE(s.risk_score, 50)::int,
			COALESCE(f.unit_cost, 0)::float8
		FROM user_inventory i
		LEFT JOIN expiration_risk_scores s
		  ON s.inventory_item_id = i.id
		LEFT JOIN food_inventory f
		  ON LOWER(f.name) = LOWER(i.name)
		WHERE i.user_id = $1
		ORDER BY i.expiration_date ASC NULLS LAST, i.id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ItemWithRiskPrice

	for rows.Next() {
		var it ItemWithRiskPrice
		if err := rows.Scan(
			&it.ItemID,
			&it.Name,
			&it.Category,
			&it.Quantity,
			&it.ExpirationDate,
			&it.RiskScore,
			&it.UnitCost,
		); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) FreshProjection(ctx context.Context, userID, period string, date time.Time) (*Projection, error) {
	var p Projection
	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			user_id,
			period,
			estimated_grams,
			estimated_cost,
			confidence,
			projection_date,
			created_at
		FROM waste_estimates
		WHERE user_id = $1
		  AND period = $2
		  AND projection_date = $3
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, period, date).Scan(
		&p.ID,
		&p.UserID,
		&p.Period,
		&p.Grams,
		&p.Cost,
		&p.Confidence,
		&p.ProjectionDate,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) InsertProjection(ctx context.Context, p *Projection) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO waste_estimates (
			user_id,
			period,
			estimated_grams,
			estimated_cost,
			confidence,
			projection_date
		)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at
	`,
		p.UserID,
		p.Period,
		p.Grams,
		p.Cost,
		p.Confidence,
		p.ProjectionDate,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PostgresRepository) InsertRecord(ctx context.Context, rec *Record) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO waste_records (
			user_id,
			item_name,
			category,
			grams,
			cost,
			reason,
			wasted_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at
	`,
		rec.UserID,
		rec.ItemName,
		rec.Category,
		rec.Grams,
		rec.Cost,
		rec.Reason,
		rec.WastedAt,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *PostgresRepository) RecordsSince(ctx context.Context, userID string, since time.Time) ([]*Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			user_id,
			item_name,
			category,
			grams,
			cost,
			reason,
			wasted_at,
			created_at
		FROM waste_records
		WHERE user_id = $1 AND wasted_at >= $2
		ORDER BY wasted_at DESC
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record

	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.ItemName,
			&rec.Category,
			&rec.Grams,
			&rec.Cost,
			&rec.Reason,
			&rec.WastedAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

func (r *PostgresRepository) LedgerTotals(ctx context.Context, userID string) (float64, float64, int, error) {
	var grams, cost float64
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(grams), 0)::float8,
			COALESCE(SUM(cost), 0)::float8,
			COUNT(*)
		FROM waste_records
		WHERE user_id = $1
	`, userID).Scan(&grams, &cost, &count)
	if err != nil {
		return 0, 0, 0, err
	}
	return grams, cost, count, nil
}
