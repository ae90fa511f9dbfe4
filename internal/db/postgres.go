package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'USER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS user_inventory (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(255) NOT NULL,
			quantity NUMERIC NOT NULL CHECK (quantity > 0),
			category VARCHAR(100) NOT NULL,
			purchase_date DATE NULL,
			expiration_date DATE NULL,
			notes TEXT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS food_usage_logs (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			item_name VARCHAR(255) NOT NULL,
			quantity_used NUMERIC NOT NULL DEFAULT 1,
			used_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS expiration_risk_scores (
			id SERIAL PRIMARY KEY,
			inventory_item_id INT UNIQUE NOT NULL
				REFERENCES user_inventory(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			risk_score NUMERIC NOT NULL,
			consumption_frequency NUMERIC NOT NULL DEFAULT 0,
			category_risk_factor NUMERIC NOT NULL DEFAULT 1,
			seasonal_factor NUMERIC NOT NULL DEFAULT 1,
			explanation TEXT NOT NULL DEFAULT '',
			days_until_expiry INT NOT NULL,
			priority_rank INT NULL,
			calculated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS waste_estimates (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL,
			period VARCHAR(20) NOT NULL,
			estimated_grams NUMERIC NOT NULL,
			estimated_cost NUMERIC NOT NULL,
			confidence INT NOT NULL,
			projection_date DATE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS waste_records (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL,
			item_name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL,
			grams NUMERIC NOT NULL,
			cost NUMERIC NOT NULL,
			reason VARCHAR(255) NOT NULL,
			wasted_at DATE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS community_waste_stats (
			id SERIAL PRIMARY KEY,
			category VARCHAR(100) UNIQUE NOT NULL,
			avg_weekly_grams NUMERIC NOT NULL,
			avg_weekly_cost NUMERIC NOT NULL,
			sample_size INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS food_inventory (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			unit_cost NUMERIC NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
