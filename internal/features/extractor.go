package features

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/yourusername/football-edge/internal/models"
)

// ErrInsufficientData signals that a game has too little history to be used
var ErrInsufficientData = errors.New("insufficient historical data")

// Segment names used in extraction errors
const (
	SegmentHeadToHead = "head2head"
	SegmentHomeForm   = "home_form"
	SegmentAwayForm   = "away_form"
)

// Extractor builds feature vectors for target games against an archive
type Extractor struct {
	archive *Archive
	config  Config
}

// NewExtractor creates an extractor after validating its config
func NewExtractor(archive *Archive, cfg Config) (*Extractor, error) {
	if archive == nil {
		return nil, fmt.Errorf("archive is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feature config: %w", err)
	}
	return &Extractor{archive: archive, config: cfg}, nil
}

// Config returns the extraction settings
func (e *Extractor) Config() Config {
	return e.config
}

// Extract returns head-to-head, home form and away form concatenated, or
// an error wrapping ErrInsufficientData when any segment lacks history.
func (e *Extractor) Extract(game models.Game) (models.FeatureVector, error) {
	head2head, err := e.HeadToHead(game.HomeTeamID, game.AwayTeamID, game.Date)
	if err != nil {
		return nil, segmentError(SegmentHeadToHead, game, err)
	}
	home, err := e.RecentForm(game.LeagueID, game.HomeTeamID, game.Date)
	if err != nil {
		return nil, segmentError(SegmentHomeForm, game, err)
	}
	away, err := e.RecentForm(game.LeagueID, game.AwayTeamID, game.Date)
	if err != nil {
		return nil, segmentError(SegmentAwayForm, game, err)
	}

	vector := make(models.FeatureVector, 0, e.config.VectorLength())
	vector = append(vector, head2head...)
	vector = append(vector, home...)
	vector = append(vector, away...)
	return vector, nil
}

// RecentForm returns the team's latest league goal differences before the
// target date, most recent first, padded per the recent-games window.
func (e *Extractor) RecentForm(leagueID, teamID int64, target time.Time) ([]int, error) {
	results := walkBack(e.archive.TeamGames(leagueID, teamID), target, e.config.MaxDaysSinceGame, e.config.RecentGames.Max,
		func(g models.Game) int {
			if g.HomeTeamID == teamID {
				return g.GoalDifference
			}
			return -g.GoalDifference
		})
	return CheckGamesResults(results, e.config.RecentGames.Min, e.config.RecentGames.Max)
}

// HeadToHead returns the latest results between the two teams before the
// target date, signed from the target home team's side.
func (e *Extractor) HeadToHead(homeTeamID, awayTeamID int64, target time.Time) ([]int, error) {
	results := walkBack(e.archive.PairGames(homeTeamID, awayTeamID), target, e.config.MaxDaysSinceHeadToHead, e.config.HeadToHead.Max,
		func(g models.Game) int {
			if g.HomeTeamID == homeTeamID {
				return g.GoalDifference
			}
			return -g.GoalDifference
		})
	return CheckGamesResults(results, e.config.HeadToHead.Min, e.config.HeadToHead.Max)
}

// walkBack scans games (ascending by date) newest first and collects up to
// limit values from games strictly before target and fewer than maxDays old.
func walkBack(games []models.Game, target time.Time, maxDays, limit int, value func(models.Game) int) []int {
	results := make([]int, 0, limit)
	for i := len(games) - 1; i >= 0 && len(results) < limit; i-- {
		age := models.DaysBetween(games[i].Date, target)
		if age <= 0 {
			continue
		}
		if age >= maxDays {
			break
		}
		results = append(results, value(games[i]))
	}
	return results
}

// CheckGamesResults applies the admission policy: a full list is returned
// as-is, a list with at least minimum values is padded to maximum with the
// rounded mean, anything shorter is rejected.
func CheckGamesResults(results []int, minimum, maximum int) ([]int, error) {
	if len(results) == maximum {
		return append([]int(nil), results...), nil
	}
	if len(results) > maximum {
		return nil, fmt.Errorf("have %d results, window holds %d", len(results), maximum)
	}
	if len(results) < minimum {
		return nil, fmt.Errorf("%w: have %d results, need %d", ErrInsufficientData, len(results), minimum)
	}

	padded := make([]int, 0, maximum)
	padded = append(padded, results...)
	fill := roundedMean(results)
	for len(padded) < maximum {
		padded = append(padded, fill)
	}
	return padded, nil
}

// roundedMean rounds half to even; the mean of nothing is zero
func roundedMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.RoundToEven(float64(sum) / float64(len(values))))
}

func segmentError(segment string, game models.Game, err error) error {
	return fmt.Errorf("%s for game %d: %w", segment, game.GameID, err)
}
