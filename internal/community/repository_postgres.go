package community

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

func (r *PostgresRepository) AllStats(ctx context.Context) ([]*Stats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category, avg_weekly_grams, avg_weekly_cost, sample_size, updated_at
		FROM community_waste_stats
		ORDER BY category ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*Stats
	for rows.Next() {
		var s Stats
		if err := rows.Scan(
			&s.ID,
			&s.Category,
			&s.AvgWeeklyGrams,
			&s.AvgWeeklyCost,
			&s.SampleSize,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}

	return stats, rows.Err()
}

func (r *PostgresRepository) StatsForCategory(ctx context.Context, category string) (*Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT id, category, avg_weekly_grams, avg_weekly_cost, sample_size, updated_at
		FROM community_waste_stats
		WHERE LOWER(category) = LOWER($1)
	`, category).Scan(
		&s.ID,
		&s.Category,
		&s.AvgWeeklyGrams,
		&s.AvgWeeklyCost,
		&s.SampleSize,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) UserCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT category
		FROM user_inventory
		WHERE user_id = $1
		ORDER BY category ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *PostgresRepository) UserCategoryGrams(ctx context.Context, userID string, since time.Time) (map[string]float64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, COALESCE(SUM(grams), 0)::float8
		FROM waste_records
		WHERE user_id = $1 AND wasted_at >= $2
		GROUP BY category
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grams := make(map[string]float64)
	for rows.Next() {
		var category string
		var g float64
		if err := rows.Scan(&category, &g); err != nil {
			return nil, err
		}
		grams[category] = g
	}

	return grams, rows.Err()
}

func (r *PostgresRepository) RecentReasons(ctx context.Context, userID string, since time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT reason
		FROM waste_records
		WHERE user_id = $1 AND wasted_at >= $2
		ORDER BY wasted_at DESC
		LIMIT 20
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reasons []string
	for rows.Next() {
		var reason string
		if err := rows.Scan(&reason); err != nil {
			return nil, err
		}
		reasons = append(reasons, reason)
	}

	return reasons, rows.Err()
}

func (r *PostgresRepository) UpsertStats(ctx context.Context, s *Stats) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO community_waste_stats (
			category,
			avg_weekly_grams,
			avg_weekly_cost,
			sample_size
		)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (category)
		DO UPDATE SET
			avg_weekly_grams = EXCLUDED.avg_weekly_grams,
			avg_weekly_cost = EXCLUDED.avg_weekly_cost,
			sample_size = EXCLUDED.sample_size,
			updated_at = now()
	`,
		s.Category,
		s.AvgWeeklyGrams,
		s.AvgWeeklyCost,
		s.SampleSize,
	)
	return err
}

func (r *PostgresRepository) CategoryWeeklyAverages(ctx context.Context, since time.Time) (map[string][]CategorySample, error) {
	weeks := time.Since(since).Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			category,
			user_id::text,
			COALESCE(SUM(grams), 0)::float8,
			COALESCE(SUM(cost), 0)::float8
		FROM waste_records
		WHERE wasted_at >= $1
		GROUP BY category, user_id
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make(map[string][]CategorySample)
	for rows.Next() {
		var category string
		var sample CategorySample
		if err := rows.Scan(&category, &sample.UserID, &sample.Grams, &sample.Cost); err != nil {
			return nil, err
		}
		sample.Grams /= weeks
		sample.Cost /= weeks
		samples[category] = append(samples[category], sample)
	}

	return samples, rows.Err()
}
