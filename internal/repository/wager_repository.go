package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/models"
)

// PostgresWagerRepository implements WagerRepository for PostgreSQL
type PostgresWagerRepository struct {
	db *database.DB
}

// NewPostgresWagerRepository creates a new wager repository
func NewPostgresWagerRepository(db *database.DB) WagerRepository {
	return &PostgresWagerRepository{db: db}
}

// SaveLedger stores the ledger rows of a run using COPY
func (r *PostgresWagerRepository) SaveLedger(ctx context.Context, runID uuid.UUID, ledger []models.Wager) error {
	if len(ledger) == 0 {
		return nil
	}

	rows := make([][]any, len(ledger))
	for i, w := range ledger {
		rows[i] = []any{runID, w.Sequence, w.GameID, w.Stake, w.Odd, w.Gain, w.Bankroll}
	}

	_, err := r.db.GetPool().CopyFrom(ctx,
		pgx.Identifier{"wagers"},
		[]string{"run_id", "sequence", "game_id", "bet", "odd", "gain", "money"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

// GetByRunID retrieves the ledger of a run in settlement order
func (r *PostgresWagerRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]models.Wager, error) {
	query := `
		SELECT run_id, sequence, game_id, bet, odd, gain, money
		FROM wagers WHERE run_id = $1 ORDER BY sequence ASC
	`
	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var ledger []models.Wager
	for rows.Next() {
		var w models.Wager
		if err := rows.Scan(&w.RunID, &w.Sequence, &w.GameID, &w.Stake, &w.Odd, &w.Gain, &w.Bankroll); err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		ledger = append(ledger, w)
	}
	return ledger, rows.Err()
}
