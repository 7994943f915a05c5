package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"toolrental-charges/internal/logger"
)

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established")
	return db, nil
}
