package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/models"
)

const (
	errScanPolicyResult = "failed to scan policy result: %w"

	selectPolicyResultColumns = `
		run_id, min_bet_limit, max_bet_limit, min_prediction_confidence, gain, biggest_win,
		biggest_loss, average_bet, average_gain, no_bets, bets_won, bets_lost, created_at
	`
)

// PostgresPolicyResultRepository implements PolicyResultRepository for PostgreSQL
type PostgresPolicyResultRepository struct {
	db *database.DB
}

// NewPostgresPolicyResultRepository creates a new policy result repository
func NewPostgresPolicyResultRepository(db *database.DB) PolicyResultRepository {
	return &PostgresPolicyResultRepository{db: db}
}

// SaveResults stores all rows of an optimizer run in one transaction
func (r *PostgresPolicyResultRepository) SaveResults(ctx context.Context, results []models.PolicyResult) error {
	if len(results) == 0 {
		return nil
	}
	query := `
		INSERT INTO policy_results (
			run_id, min_bet_limit, max_bet_limit, min_prediction_confidence, gain, biggest_win,
			biggest_loss, average_bet, average_gain, no_bets, bets_won, bets_lost, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (run_id, min_bet_limit, max_bet_limit, min_prediction_confidence) DO NOTHING
	`

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, res := range results {
			batch.Queue(query,
				res.RunID, res.Policy.MinBet, res.Policy.MaxBet, res.Policy.MinConfidence,
				res.Gain, res.BiggestWin, res.BiggestLoss, res.AverageBet, res.AverageGain,
				res.NoBets, res.BetsWon, res.BetsLost, res.CreatedAt,
			)
		}
		_, err := execBatch(ctx, tx.SendBatch(ctx, batch), len(results), "policy result")
		return err
	})
}

// GetByRunID retrieves the rows of a run in grid order
func (r *PostgresPolicyResultRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]models.PolicyResult, error) {
	query := `SELECT ` + selectPolicyResultColumns + `
		FROM policy_results WHERE run_id = $1
		ORDER BY min_bet_limit ASC, max_bet_limit ASC, min_prediction_confidence ASC
	`
	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query policy results: %w", err)
	}
	defer rows.Close()

	var results []models.PolicyResult
	for rows.Next() {
		res, err := scanPolicyResult(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanPolicyResult, err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// GetBest retrieves the highest-gain row of a run
func (r *PostgresPolicyResultRepository) GetBest(ctx context.Context, runID uuid.UUID) (*models.PolicyResult, error) {
	query := `SELECT ` + selectPolicyResultColumns + `
		FROM policy_results WHERE run_id = $1
		ORDER BY gain DESC, min_bet_limit ASC, max_bet_limit ASC, min_prediction_confidence ASC
		LIMIT 1
	`
	res, err := scanPolicyResult(r.db.QueryRow(ctx, query, runID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best policy result: %w", err)
	}
	return &res, nil
}

func scanPolicyResult(row pgx.Row) (models.PolicyResult, error) {
	var res models.PolicyResult
	err := row.Scan(
		&res.RunID, &res.Policy.MinBet, &res.Policy.MaxBet, &res.Policy.MinConfidence,
		&res.Gain, &res.BiggestWin, &res.BiggestLoss, &res.AverageBet, &res.AverageGain,
		&res.NoBets, &res.BetsWon, &res.BetsLost, &res.CreatedAt,
	)
	return res, err
}
