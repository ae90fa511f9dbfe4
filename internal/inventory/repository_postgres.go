package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("inventory item not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *Item) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO user_inventory (
			user_id,
			name,
			quantity,
			category,
			purchase_date,
			expiration_date,
			notes
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at
	`,
		item.UserID,
		item.Name,
		item.Quantity,
		item.Category,
		item.PurchaseDate,
		item.ExpirationDate,
		item.Notes,
	).Scan(
		&item.ID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Item, error) {
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

	var items []*Item

	for rows.Next() {
		var it Item
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

func (r *PostgresRepository) GetByID(ctx context.Context, userID string, itemID int) (*Item, error) {
	var it Item
	err := r.db.QueryRow(ctx, `
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
		WHERE id = $1 AND user_id = $2
	`, itemID, userID).Scan(
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
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *Item) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE user_inventory
		SET
			name = $1,
			quantity = $2,
			category = $3,
			purchase_date = $4,
			expiration_date = $5,
			notes = $6,
			updated_at = now()
		WHERE id = $7 AND user_id = $8
	`,
		item.Name,
		item.Quantity,
		item.Category,
		item.PurchaseDate,
		item.ExpirationDate,
		item.Notes,
		item.ID,
		item.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, itemID int) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM user_inventory
		WHERE id = $1 AND user_id = $2
	`, itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) LogUsage(ctx context.Context, usage *UsageLog) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO food_usage_logs (user_id, item_name, quantity_used, used_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
		RETURNING id, used_at
	`,
		usage.UserID,
		usage.ItemName,
		usage.QuantityUsed,
		nullableTime(usage.UsedAt),
	).Scan(&usage.ID, &usage.UsedAt)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
