package service

import (
	"time"

	"github.com/yourusername/football-edge/internal/datasource"
	"github.com/yourusername/football-edge/internal/models"
)

// JoinOdds pairs games with odds of the same id, keeping the order of games
func JoinOdds(games []models.Game, odds []models.Odds) []models.EvaluationGame {
	byID := make(map[int64]models.Odds, len(odds))
	for _, o := range odds {
		if _, ok := byID[o.GameID]; !ok {
			byID[o.GameID] = o
		}
	}

	var joined []models.EvaluationGame
	for _, g := range games {
		if o, ok := byID[g.GameID]; ok {
			joined = append(joined, models.EvaluationGame{Game: g, Odds: o})
		}
	}
	return joined
}

// ExcludeGames drops games whose id appears in the evaluation set
func ExcludeGames(games []models.Game, evaluation []models.EvaluationGame) []models.Game {
	if len(evaluation) == 0 {
		return games
	}
	ids := make(map[int64]struct{}, len(evaluation))
	for _, e := range evaluation {
		ids[e.GameID] = struct{}{}
	}

	kept := make([]models.Game, 0, len(games))
	for _, g := range games {
		if _, ok := ids[g.GameID]; !ok {
			kept = append(kept, g)
		}
	}
	return kept
}

type fixtureKey struct {
	home, away int64
	date       time.Time
}

// MatchOddsRows finds the archive game of each CSV row by team ids and kick-off day.
// Rows with unknown team names or no matching game are skipped; each game is matched once.
func MatchOddsRows(rows []datasource.OddsRow, teams map[string]int64, archive []models.Game) []models.EvaluationGame {
	index := make(map[fixtureKey]models.Game, len(archive))
	for _, g := range archive {
		key := fixtureKey{g.HomeTeamID, g.AwayTeamID, models.TruncateDay(g.Date)}
		if _, ok := index[key]; !ok {
			index[key] = g
		}
	}

	seen := make(map[int64]struct{})
	var matched []models.EvaluationGame
	for _, row := range rows {
		home, okHome := teams[row.HomeTeamName]
		away, okAway := teams[row.AwayTeamName]
		if !okHome || !okAway {
			continue
		}
		g, ok := index[fixtureKey{home, away, models.TruncateDay(row.Date)}]
		if !ok {
			continue
		}
		if _, dup := seen[g.GameID]; dup {
			continue
		}
		seen[g.GameID] = struct{}{}

		matched = append(matched, models.EvaluationGame{
			Game: g,
			Odds: models.Odds{GameID: g.GameID, Home: row.HomeOdd, Draw: row.DrawOdd, Away: row.AwayOdd},
		})
	}
	return matched
}
