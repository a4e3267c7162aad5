// Package features derives fixed-length form and head-to-head vectors from
// the archive of finished games.
package features

import (
	"sort"

	"github.com/yourusername/football-edge/internal/models"
)

type teamKey struct {
	league int64
	team   int64
}

type pairKey struct {
	low  int64
	high int64
}

func newPairKey(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

// Archive indexes finished games per (league, team) and per team pair,
// each index in ascending date order. It is read-only once built.
type Archive struct {
	byTeam map[teamKey][]models.Game
	byPair map[pairKey][]models.Game
	size   int
}

// NewArchive builds the indexes over the given games
func NewArchive(games []models.Game) *Archive {
	a := &Archive{
		byTeam: make(map[teamKey][]models.Game),
		byPair: make(map[pairKey][]models.Game),
		size:   len(games),
	}
	for _, game := range games {
		home := teamKey{league: game.LeagueID, team: game.HomeTeamID}
		away := teamKey{league: game.LeagueID, team: game.AwayTeamID}
		a.byTeam[home] = append(a.byTeam[home], game)
		a.byTeam[away] = append(a.byTeam[away], game)

		pair := newPairKey(game.HomeTeamID, game.AwayTeamID)
		a.byPair[pair] = append(a.byPair[pair], game)
	}
	for key := range a.byTeam {
		sortByDate(a.byTeam[key])
	}
	for key := range a.byPair {
		sortByDate(a.byPair[key])
	}
	return a
}

// Len returns the number of games in the archive
func (a *Archive) Len() int {
	return a.size
}

// TeamGames returns the games the team played in the league, oldest first
func (a *Archive) TeamGames(leagueID, teamID int64) []models.Game {
	return a.byTeam[teamKey{league: leagueID, team: teamID}]
}

// PairGames returns every game between the two teams in either
// orientation and any league, oldest first
func (a *Archive) PairGames(teamA, teamB int64) []models.Game {
	return a.byPair[newPairKey(teamA, teamB)]
}

func sortByDate(games []models.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Date.Before(games[j].Date)
	})
}
