package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/football-edge/internal/models"
)

// GameRepository defines the interface for archive game data access
type GameRepository interface {
	// InsertBatch inserts games, ignoring ids already stored, and returns the number inserted
	InsertBatch(ctx context.Context, games []models.Game) (int, error)
	List(ctx context.Context) ([]models.Game, error)
	ListBySeasonRange(ctx context.Context, firstSeason, lastSeason int) ([]models.Game, error)
	Delete(ctx context.Context, gameIDs []int64) (int, error)
}

// EvaluationGameRepository defines the interface for evaluation game data access
type EvaluationGameRepository interface {
	InsertBatch(ctx context.Context, games []models.EvaluationGame) (int, error)
	List(ctx context.Context) ([]models.EvaluationGame, error)
	// MoveFromGames deletes the games from the archive and stores them with odds in one transaction
	MoveFromGames(ctx context.Context, games []models.EvaluationGame) (int, error)
}

// PolicyResultRepository defines the interface for optimizer results
type PolicyResultRepository interface {
	SaveResults(ctx context.Context, results []models.PolicyResult) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]models.PolicyResult, error)
	GetBest(ctx context.Context, runID uuid.UUID) (*models.PolicyResult, error)
}

// WagerRepository defines the interface for the bet ledger
type WagerRepository interface {
	SaveLedger(ctx context.Context, runID uuid.UUID, ledger []models.Wager) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]models.Wager, error)
}
