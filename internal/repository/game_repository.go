package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/football-edge/internal/database"
	"github.com/yourusername/football-edge/internal/models"
)

const (
	errScanGame = "failed to scan game: %w"

	insertGameQuery = `
		INSERT INTO games (game_id, home_team_id, away_team_id, result, goal_difference, date, league_id, season)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id) DO NOTHING
	`
	selectGameColumns = `game_id, home_team_id, away_team_id, result, goal_difference, date, league_id, season`
)

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// InsertBatch inserts games in a single round trip
func (r *PostgresGameRepository) InsertBatch(ctx context.Context, games []models.Game) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, g := range games {
		batch.Queue(insertGameQuery, gameArgs(g)...)
	}
	return execBatch(ctx, r.db.GetPool().SendBatch(ctx, batch), len(games), "game")
}

// List retrieves every archive game ordered by date
func (r *PostgresGameRepository) List(ctx context.Context) ([]models.Game, error) {
	query := `SELECT ` + selectGameColumns + ` FROM games ORDER BY date ASC, game_id ASC`
	return r.query(ctx, query)
}

// ListBySeasonRange retrieves archive games whose season lies in [firstSeason, lastSeason]
func (r *PostgresGameRepository) ListBySeasonRange(ctx context.Context, firstSeason, lastSeason int) ([]models.Game, error) {
	query := `SELECT ` + selectGameColumns + ` FROM games WHERE season BETWEEN $1 AND $2 ORDER BY date ASC, game_id ASC`
	return r.query(ctx, query, firstSeason, lastSeason)
}

// Delete removes games by id and returns the number removed
func (r *PostgresGameRepository) Delete(ctx context.Context, gameIDs []int64) (int, error) {
	if len(gameIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE game_id = ANY($1)`, gameIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete games: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *PostgresGameRepository) query(ctx context.Context, query string, args ...any) ([]models.Game, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func gameArgs(g models.Game) []any {
	return []any{
		g.GameID, g.HomeTeamID, g.AwayTeamID, int16(g.Result), g.GoalDifference,
		g.Date, g.LeagueID, g.Season,
	}
}

func scanGame(row pgx.Row, extra ...any) (models.Game, error) {
	var (
		g      models.Game
		result int16
	)
	dest := append([]any{
		&g.GameID, &g.HomeTeamID, &g.AwayTeamID, &result, &g.GoalDifference,
		&g.Date, &g.LeagueID, &g.Season,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Game{}, err
	}
	g.Result = models.Result(result)
	g.Date = models.TruncateDay(g.Date)
	return g, nil
}

// execBatch drains a batch of inserts and sums the affected rows
func execBatch(ctx context.Context, br pgx.BatchResults, n int, kind string) (int, error) {
	defer br.Close()

	inserted := 0
	for i := 0; i < n; i++ {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert %s %d: %w", kind, i, err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := ctx.Err(); err != nil {
		return inserted, err
	}
	return inserted, nil
}
