// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sales-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient holds the pool used by the catalog, alias, plan and turn
// log tables.
type PostgresClient struct {
	DB *sql.DB
}

// salesSchema lists the tables the sales workers read and write. Every
// statement is idempotent.
var salesSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		shop_id VARCHAR(64) NOT NULL,
		id VARCHAR(255) NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		category VARCHAR(100),
		tags JSONB,
		rating DOUBLE PRECISION,
		popularity_score DOUBLE PRECISION,
		PRIMARY KEY (shop_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS shop_aliases (
		shop_id VARCHAR(64) NOT NULL,
		alias VARCHAR(255) NOT NULL,
		terms JSONB NOT NULL,
		source VARCHAR(32) NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (shop_id, alias)
	)`,
	`CREATE TABLE IF NOT EXISTS shop_plans (
		shop_id VARCHAR(64) PRIMARY KEY,
		plan VARCHAR(32) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales_turns (
		id VARCHAR(64) PRIMARY KEY,
		shop_id VARCHAR(64) NOT NULL,
		conversation_id VARCHAR(255),
		text TEXT NOT NULL,
		intent VARCHAR(32),
		action VARCHAR(64),
		ai_reason VARCHAR(64),
		recommended JSONB,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_turns_shop_created ON sales_turns (shop_id, created_at)`,
}

func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	if cfg.Host == "" || cfg.Database == "" {
		return nil, fmt.Errorf("postgres host and database are required")
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	maxOpen := cfg.MaxConnections
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// EnsureSchema creates the sales tables inside one transaction.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema migration: %w", err)
	}
	for _, stmt := range salesSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema migration: %w", err)
	}
	return nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
