package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements are applied one at a time on startup; pgx's extended query
// protocol rejects multi-command strings. All statements are idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id            UUID PRIMARY KEY,
		sku           TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		category      TEXT NOT NULL DEFAULT 'Uncategorized',
		current_stock INT NOT NULL DEFAULT 0,
		reorder_level INT NOT NULL DEFAULT 0,
		last_updated  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id         UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id),
		sale_date  TIMESTAMPTZ NOT NULL,
		quantity   INT NOT NULL,
		region     TEXT,
		revenue    DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_product_date ON sales (product_id, sale_date)`,
	`CREATE TABLE IF NOT EXISTS forecasts (
		id               UUID PRIMARY KEY,
		product_id       UUID NOT NULL REFERENCES products(id),
		region           TEXT NOT NULL DEFAULT 'Global',
		forecast_month   TEXT NOT NULL,
		predicted_demand DOUBLE PRECISION NOT NULL,
		confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		ai_reasoning     TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_forecasts_created_at ON forecasts (created_at DESC)`,
}

// EnsureSchema creates the tables used by the application if they are missing.
// Forecasts intentionally carry no uniqueness constraint on
// (product_id, region, forecast_month): regeneration appends new records.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
