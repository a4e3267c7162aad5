package database

import (
	"context"
	"fmt"

	"github.com/yourusername/football-edge/internal/config"
	"github.com/yourusername/football-edge/migrations"
)

// Initialize creates a connection pool and applies the embedded schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migrations.Apply(ctx, db.pool); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return db, nil
}
