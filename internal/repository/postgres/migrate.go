package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"scooter-sharing-backend/internal/logger"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.Info("Applying database schema")
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("Database schema is up to date")
	return nil
}
