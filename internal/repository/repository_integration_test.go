//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/models"
	"github.com/yourusername/football-edge/migrations"
)

// setupTestDB starts a PostgreSQL container and applies the embedded migrations
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("football_edge_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewDBFromDSN(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, migrations.Apply(ctx, db.GetPool()))

	t.Cleanup(func() {
		db.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})
	return db
}

func day(d int) time.Time {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func game(id int64, home, away int64, season int, d int, diff int) models.Game {
	g := models.NewGameFromScore(id, home, away, 39, season, day(d), 0, 0)
	g.GoalDifference = diff
	g.Result = models.ResultFromGoalDifference(diff)
	return g
}

func TestRepositories(t *testing.T) {
	db := setupTestDB(t)
	repos, err := NewRepositories(db)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("games insert or ignore", func(t *testing.T) {
		games := []models.Game{
			game(1, 10, 20, 2018, 0, 2),
			game(2, 20, 10, 2019, 30, -1),
			game(3, 10, 30, 2020, 60, 0),
		}
		n, err := repos.Game.InsertBatch(ctx, games)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = repos.Game.InsertBatch(ctx, games[:2])
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		all, err := repos.Game.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, games, all)

		ranged, err := repos.Game.ListBySeasonRange(ctx, 2019, 2020)
		require.NoError(t, err)
		require.Len(t, ranged, 2)
		assert.Equal(t, int64(2), ranged[0].GameID)
	})

	t.Run("move to evaluation", func(t *testing.T) {
		eval := models.EvaluationGame{
			Game: game(3, 10, 30, 2020, 60, 0),
			Odds: models.Odds{GameID: 3, Home: 2.1, Draw: 3.2, Away: 3.6},
		}
		n, err := repos.Evaluation.MoveFromGames(ctx, []models.EvaluationGame{eval})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		remaining, err := repos.Game.List(ctx)
		require.NoError(t, err)
		assert.Len(t, remaining, 2)

		stored, err := repos.Evaluation.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.EvaluationGame{eval}, stored)

		deleted, err := repos.Game.Delete(ctx, []int64{1, 99})
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
	})

	t.Run("results and ledger", func(t *testing.T) {
		runID := uuid.New()
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		results := []models.PolicyResult{
			{RunID: runID, Policy: models.StakePolicy{MinBet: 5, MaxBet: 10, MinConfidence: 0.4}, Gain: 12.5, CreatedAt: created},
			{RunID: runID, Policy: models.StakePolicy{MinBet: 5, MaxBet: 20, MinConfidence: 0.4}, Gain: 40, CreatedAt: created},
		}
		store := NewResultStore(repos.PolicyResult, repos.Wager)
		require.NoError(t, store.SaveResults(ctx, results))

		got, err := repos.PolicyResult.GetByRunID(ctx, runID)
		require.NoError(t, err)
		require.Len(t, got, 2)

		best, err := repos.PolicyResult.GetBest(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, 20.0, best.Policy.MaxBet)

		_, err = repos.PolicyResult.GetBest(ctx, uuid.New())
		assert.ErrorIs(t, err, models.ErrNotFound)

		ledger := []models.Wager{
			{Sequence: 1, GameID: 7, Stake: 10, Odd: 2.5, Gain: 15, Bankroll: 1015},
			{Sequence: 2, GameID: 8, Stake: 12, Odd: 1.8, Gain: -12, Bankroll: 1003},
		}
		require.NoError(t, store.SaveLedger(ctx, runID, ledger))

		stored, err := repos.Wager.GetByRunID(ctx, runID)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, runID, stored[0].RunID)
		assert.Equal(t, 1003.0, stored[1].Bankroll)
	})
}
