// Package repository provides PostgreSQL persistence for games and optimizer output.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/models"
)

// Repositories holds all repository implementations
type Repositories struct {
	Game         GameRepository
	Evaluation   EvaluationGameRepository
	PolicyResult PolicyResultRepository
	Wager        WagerRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Game:         NewPostgresGameRepository(db),
		Evaluation:   NewPostgresEvaluationGameRepository(db),
		PolicyResult: NewPostgresPolicyResultRepository(db),
		Wager:        NewPostgresWagerRepository(db),
	}, nil
}

// ResultStore persists optimizer results and the winning ledger
type ResultStore struct {
	results PolicyResultRepository
	wagers  WagerRepository
}

// NewResultStore combines the result and wager repositories
func NewResultStore(results PolicyResultRepository, wagers WagerRepository) *ResultStore {
	return &ResultStore{results: results, wagers: wagers}
}

// SaveResults stores every evaluated policy row
func (s *ResultStore) SaveResults(ctx context.Context, results []models.PolicyResult) error {
	return s.results.SaveResults(ctx, results)
}

// SaveLedger stores the bet ledger of a run
func (s *ResultStore) SaveLedger(ctx context.Context, runID uuid.UUID, ledger []models.Wager) error {
	return s.wagers.SaveLedger(ctx, runID, ledger)
}
