package models

import "time"

// DateLayout is the calendar-day layout used across the store and the API
const DateLayout = "2006-01-02"

// Game represents a finished fixture in the archive
type Game struct {
	GameID         int64     `db:"game_id" json:"game_id" validate:"required"`
	HomeTeamID     int64     `db:"home_team_id" json:"home_team_id" validate:"required"`
	AwayTeamID     int64     `db:"away_team_id" json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	LeagueID       int64     `db:"league_id" json:"league_id" validate:"required"`
	Season         int       `db:"season" json:"season" validate:"required"`
	Date           time.Time `db:"date" json:"date" validate:"required"`
	GoalDifference int       `db:"goal_difference" json:"goal_difference"`
	Result         Result    `db:"result" json:"result"`
}

// NewGameFromScore builds a game from a final score
func NewGameFromScore(gameID, homeTeamID, awayTeamID, leagueID int64, season int, date time.Time, homeGoals, awayGoals int) Game {
	diff := homeGoals - awayGoals
	return Game{
		GameID:         gameID,
		HomeTeamID:     homeTeamID,
		AwayTeamID:     awayTeamID,
		LeagueID:       leagueID,
		Season:         season,
		Date:           TruncateDay(date),
		GoalDifference: diff,
		Result:         ResultFromGoalDifference(diff),
	}
}

// Involves reports whether the team played in the game
func (g Game) Involves(teamID int64) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// TruncateDay drops the time-of-day component, keeping the calendar day in UTC
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from one calendar day to another
func DaysBetween(from, to time.Time) int {
	return int(TruncateDay(to).Sub(TruncateDay(from)).Hours() / 24)
}

// Odds represents 1X2 decimal odds for a fixture
type Odds struct {
	GameID int64   `db:"game_id" json:"game_id" validate:"required"`
	Home   float64 `db:"home_odd" json:"home_odd" validate:"required,gt=1"`
	Draw   float64 `db:"draw_odd" json:"draw_odd" validate:"required,gt=1"`
	Away   float64 `db:"away_odd" json:"away_odd" validate:"required,gt=1"`
}

// For returns the odd paid for the given outcome
func (o Odds) For(r Result) float64 {
	switch r {
	case ResultHomeWin:
		return o.Home
	case ResultDraw:
		return o.Draw
	default:
		return o.Away
	}
}

// EvaluationGame is a finished game with the odds offered before kick-off
type EvaluationGame struct {
	Game
	Odds Odds `json:"odds"`
}
