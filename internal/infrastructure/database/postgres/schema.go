package postgres

import (
	"context"
	"customer-service/internal/pkg/apperrors"
	"fmt"
	"log/slog"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
        id BIGSERIAL PRIMARY KEY,
        first_name VARCHAR(64) NOT NULL,
        last_name VARCHAR(64) NOT NULL,
        userid VARCHAR(64) UNIQUE,
        password VARCHAR(64),
        active BOOLEAN NOT NULL DEFAULT TRUE
    )`,
	`CREATE TABLE IF NOT EXISTS addresses (
        id BIGSERIAL PRIMARY KEY,
        customer_id BIGINT NOT NULL REFERENCES customers (id) ON DELETE CASCADE,
        street VARCHAR(64) NOT NULL,
        city VARCHAR(64) NOT NULL,
        state VARCHAR(64) NOT NULL,
        postal_code VARCHAR(16) NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_customer_id ON addresses (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_first_name ON customers (first_name)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_last_name ON customers (last_name)`,
}

// EnsureSchema creates the customers and addresses tables when they do not exist yet.
// Existing tables are left as they are.
func EnsureSchema(ctx context.Context, db DBPool, logger *slog.Logger) error {
	logger.Info("Ensuring database schema", slog.Int("statements", len(schemaStatements)))
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			logger.Error("Failed to apply schema statement", slog.Int("index", i), slog.Any("error", err))
			return fmt.Errorf("%w: schema statement %d: %w", apperrors.ErrDatabase, i, err)
		}
	}
	logger.Info("Database schema is ready")
	return nil
}
