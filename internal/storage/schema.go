package storage

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the result store table when it does not exist
// yet, so the service can start against an empty database.
func EnsureSchema(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS macro_analyses (
			id BIGSERIAL PRIMARY KEY,
			sp500_analysis TEXT NOT NULL,
			fear_greed_analysis TEXT NOT NULL,
			currency_analysis TEXT NOT NULL,
			analysis_summary TEXT NOT NULL,
			fear_greed_value TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			provider TEXT NOT NULL DEFAULT '',
			lookback_hours INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create macro_analyses: %w", err)
	}

	query = `
		CREATE INDEX IF NOT EXISTS macro_analyses_created_at_idx
		ON macro_analyses (created_at DESC);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to index macro_analyses: %w", err)
	}

	return nil
}
