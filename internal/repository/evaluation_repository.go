package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/models"
)

const insertEvaluationQuery = `
	INSERT INTO evaluation (game_id, home_team_id, away_team_id, result, goal_difference, date,
	                        league_id, season, home_odd, draw_odd, away_odd)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO NOTHING
`

// PostgresEvaluationGameRepository implements EvaluationGameRepository for PostgreSQL
type PostgresEvaluationGameRepository struct {
	db *database.DB
}

// NewPostgresEvaluationGameRepository creates a new evaluation game repository
func NewPostgresEvaluationGameRepository(db *database.DB) EvaluationGameRepository {
	return &PostgresEvaluationGameRepository{db: db}
}

// InsertBatch inserts evaluation games, ignoring ids already stored
func (r *PostgresEvaluationGameRepository) InsertBatch(ctx context.Context, games []models.EvaluationGame) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}
	return execBatch(ctx, r.db.GetPool().SendBatch(ctx, evaluationBatch(games)), len(games), "evaluation game")
}

// MoveFromGames deletes the games from the archive and inserts them into evaluation
func (r *PostgresEvaluationGameRepository) MoveFromGames(ctx context.Context, games []models.EvaluationGame) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	ids := make([]int64, len(games))
	for i, g := range games {
		ids[i] = g.GameID
	}

	var inserted int
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM games WHERE game_id = ANY($1)`, ids); err != nil {
			return fmt.Errorf("failed to delete archive games: %w", err)
		}
		n, err := execBatch(ctx, tx.SendBatch(ctx, evaluationBatch(games)), len(games), "evaluation game")
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// List retrieves every evaluation game ordered by date
func (r *PostgresEvaluationGameRepository) List(ctx context.Context) ([]models.EvaluationGame, error) {
	query := `
		SELECT ` + selectGameColumns + `, home_odd, draw_odd, away_odd
		FROM evaluation ORDER BY date ASC, game_id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation games: %w", err)
	}
	defer rows.Close()

	var games []models.EvaluationGame
	for rows.Next() {
		var odds models.Odds
		g, err := scanGame(rows, &odds.Home, &odds.Draw, &odds.Away)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		odds.GameID = g.GameID
		games = append(games, models.EvaluationGame{Game: g, Odds: odds})
	}
	return games, rows.Err()
}

func evaluationBatch(games []models.EvaluationGame) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, g := range games {
		args := append(gameArgs(g.Game), g.Odds.Home, g.Odds.Draw, g.Odds.Away)
		batch.Queue(insertEvaluationQuery, args...)
	}
	return batch
}
