package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/models"
)

const (
	sourceName     = "api_football"
	statusFinished = "Match Finished"
	matchWinnerBet = 1
)

// APIFootballClient implements FootballSource against the API-Football v3 REST API
type APIFootballClient struct {
	baseURL    string
	apiKey     string
	httpClient *RateLimitedHTTPClient
	logger     *logrus.Entry
	now        func() time.Time
}

// NewAPIFootballClient creates a new API-Football client
func NewAPIFootballClient(baseURL, apiKey string, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *APIFootballClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &APIFootballClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger.WithField("component", "api_football"),
		now:        time.Now,
	}
}

// Name returns the data source name
func (c *APIFootballClient) Name() string {
	return sourceName
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type fixtureInfo struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Status struct {
		Long string `json:"long"`
	} `json:"status"`
}

type fixtureTeam struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Winner *bool  `json:"winner"`
}

type fixturesResponse struct {
	Response []struct {
		Fixture fixtureInfo `json:"fixture"`
		League  struct {
			ID     int64 `json:"id"`
			Season int   `json:"season"`
		} `json:"league"`
		Teams struct {
			Home fixtureTeam `json:"home"`
			Away fixtureTeam `json:"away"`
		} `json:"teams"`
		Goals struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"goals"`
	} `json:"response"`
}

type oddsResponse struct {
	Paging   paging `json:"paging"`
	Response []struct {
		Fixture    fixtureInfo `json:"fixture"`
		Bookmakers []struct {
			ID   int `json:"id"`
			Bets []struct {
				ID     int `json:"id"`
				Values []struct {
					Value string `json:"value"`
					Odd   string `json:"odd"`
				} `json:"values"`
			} `json:"bets"`
		} `json:"bookmakers"`
	} `json:"response"`
}

type teamsResponse struct {
	Response []struct {
		Team struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"team"`
	} `json:"response"`
}

// FetchLeagueSeasonGames returns the finished games of a league season
func (c *APIFootballClient) FetchLeagueSeasonGames(ctx context.Context, leagueID int64, season int) ([]models.Game, error) {
	params := url.Values{}
	params.Set("league", strconv.FormatInt(leagueID, 10))
	params.Set("season", strconv.Itoa(season))

	var resp fixturesResponse
	if err := c.get(ctx, "fixtures", params, &resp); err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(resp.Response))
	for _, item := range resp.Response {
		if item.Fixture.Status.Long != statusFinished {
			continue
		}
		date, err := parseFixtureDate(item.Fixture.Date)
		if err != nil {
			c.logger.WithError(err).WithField("game_id", item.Fixture.ID).Warn("Skipping fixture with unparseable date")
			continue
		}
		if item.Goals.Home == nil || item.Goals.Away == nil {
			continue
		}

		games = append(games, models.Game{
			GameID:         item.Fixture.ID,
			HomeTeamID:     item.Teams.Home.ID,
			AwayTeamID:     item.Teams.Away.ID,
			LeagueID:       leagueID,
			Season:         season,
			Date:           date,
			GoalDifference: *item.Goals.Home - *item.Goals.Away,
			Result:         resultFromWinners(item.Teams.Home.Winner, item.Teams.Away.Winner),
		})
	}

	c.logger.WithFields(logrus.Fields{
		"league_id": leagueID,
		"season":    season,
		"fixtures":  len(resp.Response),
		"finished":  len(games),
	}).Debug("Fetched league season fixtures")
	return games, nil
}

// FetchOdds returns pre-match 1X2 odds for fixtures played before today
func (c *APIFootballClient) FetchOdds(ctx context.Context, leagueID int64, season int, bookmaker int) ([]models.Odds, error) {
	today := models.TruncateDay(c.now().UTC())
	var odds []models.Odds

	for page, total := 1, 1; page <= total; page++ {
		params := url.Values{}
		params.Set("league", strconv.FormatInt(leagueID, 10))
		params.Set("season", strconv.Itoa(season))
		params.Set("bookmaker", strconv.Itoa(bookmaker))
		params.Set("bet", strconv.Itoa(matchWinnerBet))
		params.Set("page", strconv.Itoa(page))

		var resp oddsResponse
		if err := c.get(ctx, "odds", params, &resp); err != nil {
			return nil, err
		}
		total = resp.Paging.Total

		for _, item := range resp.Response {
			date, err := parseFixtureDate(item.Fixture.Date)
			if err != nil || !date.Before(today) {
				continue
			}
			if len(item.Bookmakers) == 0 || len(item.Bookmakers[0].Bets) == 0 {
				continue
			}

			values := make(map[string]string, 3)
			for _, v := range item.Bookmakers[0].Bets[0].Values {
				values[v.Value] = v.Odd
			}
			o, err := parseMatchWinnerOdds(item.Fixture.ID, values)
			if err != nil {
				c.logger.WithError(err).WithField("game_id", item.Fixture.ID).Debug("Skipping incomplete odds")
				continue
			}
			odds = append(odds, o)
		}
	}

	return odds, nil
}

// FetchTeams returns a team name to id map; the first id seen for a name wins
func (c *APIFootballClient) FetchTeams(ctx context.Context, leagueID int64, season int) (map[string]int64, error) {
	params := url.Values{}
	params.Set("league", strconv.FormatInt(leagueID, 10))
	params.Set("season", strconv.Itoa(season))

	var resp teamsResponse
	if err := c.get(ctx, "teams", params, &resp); err != nil {
		return nil, err
	}

	teams := make(map[string]int64, len(resp.Response))
	for _, item := range resp.Response {
		if _, ok := teams[item.Team.Name]; !ok {
			teams[item.Team.Name] = item.Team.ID
		}
	}
	return teams, nil
}

func (c *APIFootballClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	headers := map[string]string{
		"x-apisports-key": c.apiKey,
		"Accept":          "application/json",
	}

	resp, err := c.httpClient.Get(ctx, reqURL, headers)
	if err != nil {
		metrics.RecordIngestionRequest(endpoint, "error")
		return NewDataSourceError(sourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()
	metrics.RecordIngestionRequest(endpoint, strconv.Itoa(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewDataSourceError(sourceName, ErrCodeAuthenticationFailed, "authentication failed", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(sourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode >= 500:
		return NewDataSourceError(sourceName, ErrCodeServerError, fmt.Sprintf("server error: %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewDataSourceError(sourceName, ErrCodeInvalidData, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, body), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(sourceName, ErrCodeInvalidData, "failed to decode "+endpoint+" response", err)
	}
	return nil
}

// parseFixtureDate keeps the calendar day of an ISO-8601 timestamp
func parseFixtureDate(raw string) (time.Time, error) {
	if len(raw) < len(models.DateLayout) {
		return time.Time{}, fmt.Errorf("fixture date %q too short", raw)
	}
	return time.Parse(models.DateLayout, raw[:len(models.DateLayout)])
}

func resultFromWinners(home, away *bool) models.Result {
	switch {
	case home != nil && *home:
		return models.ResultHomeWin
	case away != nil && *away:
		return models.ResultAwayWin
	default:
		return models.ResultDraw
	}
}

func parseMatchWinnerOdds(gameID int64, values map[string]string) (models.Odds, error) {
	home, err := parseDecimalOdds(values["Home"])
	if err != nil {
		return models.Odds{}, err
	}
	draw, err := parseDecimalOdds(values["Draw"])
	if err != nil {
		return models.Odds{}, err
	}
	away, err := parseDecimalOdds(values["Away"])
	if err != nil {
		return models.Odds{}, err
	}
	return models.Odds{GameID: gameID, Home: home, Draw: draw, Away: away}, nil
}

func parseDecimalOdds(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: missing value", models.ErrInvalidOdds)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidOdds, err)
	}
	if d.LessThanOrEqual(decimal.NewFromInt(1)) {
		return 0, fmt.Errorf("%w: %s not above 1", models.ErrInvalidOdds, raw)
	}
	return d.InexactFloat64(), nil
}
