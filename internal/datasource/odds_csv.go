package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var oddsCSVColumns = []string{
	"match_id", "home_team_name", "away_team_name", "date_start",
	"home_team_odd", "tie_odd", "away_team_odd",
}

// OddsRow is one historical match with closing 1X2 odds keyed by team names
type OddsRow struct {
	MatchID      string
	HomeTeamName string
	AwayTeamName string
	Date         time.Time
	HomeOdd      float64
	DrawOdd      float64
	AwayOdd      float64
}

// OddsCSVReader reads the extra-evaluation odds file
type OddsCSVReader struct {
	r io.Reader
}

// NewOddsCSVReader creates a reader over CSV content with a header row
func NewOddsCSVReader(r io.Reader) *OddsCSVReader {
	return &OddsCSVReader{r: r}
}

// ReadOddsCSVFile reads all rows of the odds file at path
func ReadOddsCSVFile(path string) ([]OddsRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open odds file: %w", err)
	}
	defer f.Close()
	return NewOddsCSVReader(f).ReadAll()
}

// ReadAll parses every row, keeping the first occurrence of each match_id
func (o *OddsCSVReader) ReadAll() ([]OddsRow, error) {
	reader := csv.NewReader(o.r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read odds header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var rows []OddsRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		matchID := field(record, index["match_id"])
		if _, dup := seen[matchID]; dup {
			continue
		}
		seen[matchID] = struct{}{}

		row, err := parseOddsRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range oddsCSVColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("odds file missing column %q", col)
		}
	}
	return index, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseOddsRow(record []string, index map[string]int) (OddsRow, error) {
	date, err := parseFixtureDate(field(record, index["date_start"]))
	if err != nil {
		return OddsRow{}, err
	}

	odds := make([]float64, 3)
	for i, col := range []string{"home_team_odd", "tie_odd", "away_team_odd"} {
		v, err := strconv.ParseFloat(field(record, index[col]), 64)
		if err != nil {
			return OddsRow{}, fmt.Errorf("invalid %s: %w", col, err)
		}
		odds[i] = v
	}

	return OddsRow{
		MatchID:      field(record, index["match_id"]),
		HomeTeamName: field(record, index["home_team_name"]),
		AwayTeamName: field(record, index["away_team_name"]),
		Date:         date,
		HomeOdd:      odds[0],
		DrawOdd:      odds[1],
		AwayOdd:      odds[2],
	}, nil
}
