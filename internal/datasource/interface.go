// Package datasource fetches fixtures, odds and team identifiers from
// external football data providers.
package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/football-edge/internal/models"
)

// FootballSource defines the provider operations used by ingestion
type FootballSource interface {
	// FetchLeagueSeasonGames returns the finished games of a league season
	FetchLeagueSeasonGames(ctx context.Context, leagueID int64, season int) ([]models.Game, error)

	// FetchOdds returns pre-match 1X2 odds for past fixtures of a league season
	FetchOdds(ctx context.Context, leagueID int64, season int, bookmaker int) ([]models.Odds, error)

	// FetchTeams returns a team name to id map for a league season
	FetchTeams(ctx context.Context, leagueID int64, season int) (map[string]int64, error)

	// Name returns the name of the data source
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// ErrCircuitOpen is returned while the client refuses requests after repeated failures
var ErrCircuitOpen = errors.New("circuit breaker open")

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
