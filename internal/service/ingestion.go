// Package service orchestrates fetching football data and persisting it.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/football-edge/internal/config"
	"github.com/yourusername/football-edge/internal/datasource"
	"github.com/yourusername/football-edge/internal/logger"
	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/models"
	"github.com/yourusername/football-edge/internal/repository"
)

// IngestionService handles the data ingestion workflow
type IngestionService struct {
	source     datasource.FootballSource
	games      repository.GameRepository
	evaluation repository.EvaluationGameRepository
	validator  *DataValidator
	cfg        config.FootballAPIConfig
	metrics    *IngestionMetrics
	log        *logger.PipelineLogger
	logger     *logrus.Entry
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	source datasource.FootballSource,
	games repository.GameRepository,
	evaluation repository.EvaluationGameRepository,
	cfg config.FootballAPIConfig,
	log *logrus.Logger,
) *IngestionService {
	if log == nil {
		log = logrus.New()
	}
	return &IngestionService{
		source:     source,
		games:      games,
		evaluation: evaluation,
		validator:  NewDataValidator(),
		cfg:        cfg,
		metrics:    NewIngestionMetrics(),
		log:        logger.NewPipelineLogger(log),
		logger:     log.WithField("component", "ingestion"),
	}
}

// IngestAll fetches every configured league and stores archive and evaluation games.
// A failing league is logged and reported in the joined error; the others are still stored.
func (s *IngestionService) IngestAll(ctx context.Context) (*IngestionMetrics, error) {
	s.metrics.Reset()
	s.logger.WithFields(logrus.Fields{
		"source":       s.source.Name(),
		"leagues":      len(s.cfg.Leagues),
		"first_season": s.cfg.FirstSeason,
		"last_season":  s.cfg.LastSeason,
	}).Info("Starting ingestion")

	var errs []error
	for _, leagueID := range s.cfg.Leagues {
		if err := ctx.Err(); err != nil {
			s.metrics.Finish()
			return s.metrics, err
		}
		if err := s.ingestLeague(ctx, leagueID); err != nil {
			if ctx.Err() != nil {
				s.metrics.Finish()
				return s.metrics, ctx.Err()
			}
			s.metrics.RecordError()
			s.logger.WithError(err).WithField("league_id", leagueID).Error("League ingestion failed")
			errs = append(errs, fmt.Errorf("league %d: %w", leagueID, err))
		}
	}

	s.metrics.Finish()
	s.logger.Info(s.metrics.String())
	return s.metrics, errors.Join(errs...)
}

func (s *IngestionService) ingestLeague(ctx context.Context, leagueID int64) error {
	extra := s.isExtraEvaluationLeague(leagueID)

	var (
		lastSeason []models.Game
		evalGames  []models.EvaluationGame
	)
	if !extra {
		var err error
		lastSeason, err = s.source.FetchLeagueSeasonGames(ctx, leagueID, s.cfg.LastSeason)
		if err != nil {
			return fmt.Errorf("failed to fetch season %d: %w", s.cfg.LastSeason, err)
		}
		odds, err := s.source.FetchOdds(ctx, leagueID, s.cfg.LastSeason, s.cfg.Bookmaker)
		if err != nil {
			return fmt.Errorf("failed to fetch odds: %w", err)
		}
		evalGames = JoinOdds(lastSeason, odds)
	}

	var games []models.Game
	for season := s.cfg.FirstSeason; season <= s.cfg.LastSeason; season++ {
		if extra && season != s.cfg.FirstSeason {
			continue
		}
		if season == s.cfg.LastSeason && lastSeason != nil {
			games = append(games, lastSeason...)
			continue
		}
		seasonGames, err := s.source.FetchLeagueSeasonGames(ctx, leagueID, season)
		if err != nil {
			return fmt.Errorf("failed to fetch season %d: %w", season, err)
		}
		games = append(games, seasonGames...)
	}
	games = ExcludeGames(games, evalGames)

	games, gameErrs := s.validator.FilterGames(games)
	evalGames, evalErrs := s.validator.FilterEvaluationGames(evalGames)
	if n := len(gameErrs) + len(evalErrs); n > 0 {
		s.metrics.RecordValidationErrors(n)
		s.logger.WithField("league_id", leagueID).WithError(errors.Join(append(gameErrs, evalErrs...)...)).
			Warnf("Dropped %d invalid games", n)
	}

	evalInserted, err := s.evaluation.InsertBatch(ctx, evalGames)
	if err != nil {
		return fmt.Errorf("failed to store evaluation games: %w", err)
	}
	gamesInserted, err := s.games.InsertBatch(ctx, games)
	if err != nil {
		return fmt.Errorf("failed to store games: %w", err)
	}

	metrics.RecordIngestedGames("evaluation", evalInserted)
	metrics.RecordIngestedGames("games", gamesInserted)
	s.metrics.RecordLeague(len(games), gamesInserted, len(evalGames), evalInserted)
	s.log.LogIngestion(leagueID, s.cfg.LastSeason, len(games)+len(evalGames), gamesInserted+evalInserted)
	return nil
}

// ImportExtraEvaluation moves archive games found in the odds CSV into the evaluation table.
// Seasons default to the configured extra-evaluation seasons.
func (s *IngestionService) ImportExtraEvaluation(ctx context.Context, csvPath string, seasons []int) (int, error) {
	if len(seasons) == 0 {
		seasons = s.cfg.ExtraEvaluationSeasons
	}
	if len(seasons) == 0 {
		return 0, fmt.Errorf("no extra evaluation seasons configured")
	}

	rows, err := datasource.ReadOddsCSVFile(csvPath)
	if err != nil {
		return 0, err
	}

	teams, err := s.teamDirectory(ctx, seasons)
	if err != nil {
		return 0, err
	}

	first, last := seasonRange(seasons)
	archive, err := s.games.ListBySeasonRange(ctx, first, last)
	if err != nil {
		return 0, fmt.Errorf("failed to load archive games: %w", err)
	}

	matched := MatchOddsRows(rows, teams, archive)
	matched, errs := s.validator.FilterEvaluationGames(matched)
	if len(errs) > 0 {
		s.metrics.RecordValidationErrors(len(errs))
		s.logger.WithError(errors.Join(errs...)).Warnf("Dropped %d invalid extra evaluation games", len(errs))
	}

	moved, err := s.evaluation.MoveFromGames(ctx, matched)
	if err != nil {
		return 0, fmt.Errorf("failed to move games to evaluation: %w", err)
	}

	metrics.RecordIngestedGames("evaluation", moved)
	s.log.LogExtraEvaluation(csvPath, len(rows), len(matched))
	return moved, nil
}

// teamDirectory merges the team name maps of every league and season, first id wins
func (s *IngestionService) teamDirectory(ctx context.Context, seasons []int) (map[string]int64, error) {
	teams := make(map[string]int64)
	for _, leagueID := range s.cfg.Leagues {
		for _, season := range seasons {
			found, err := s.source.FetchTeams(ctx, leagueID, season)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch teams for league %d season %d: %w", leagueID, season, err)
			}
			for name, id := range found {
				if _, ok := teams[name]; !ok {
					teams[name] = id
				}
			}
		}
	}
	return teams, nil
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() IngestionMetrics {
	return s.metrics.Snapshot()
}

func (s *IngestionService) isExtraEvaluationLeague(leagueID int64) bool {
	for _, id := range s.cfg.ExtraEvaluationLeagues {
		if id == leagueID {
			return true
		}
	}
	return false
}

func seasonRange(seasons []int) (int, int) {
	first, last := seasons[0], seasons[0]
	for _, s := range seasons[1:] {
		if s < first {
			first = s
		}
		if s > last {
			last = s
		}
	}
	return first, last
}
