package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/football-edge/internal/features"
	"github.com/yourusername/football-edge/internal/models"
)

func day(d int) time.Time {
	return time.Date(2023, time.March, d, 0, 0, 0, 0, time.UTC)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return log
}

func fixtureGames() []models.Game {
	return []models.Game{
		models.NewGameFromScore(1, 1, 2, 10, 2023, day(1), 2, 0),
		models.NewGameFromScore(2, 2, 1, 10, 2023, day(5), 1, 1),
		models.NewGameFromScore(3, 1, 2, 10, 2023, day(10), 0, 1),
	}
}

func newTestAssembler(t *testing.T, games []models.Game) *Assembler {
	t.Helper()
	cfg := features.Config{
		MaxDaysSinceGame:       365,
		MaxDaysSinceHeadToHead: 365,
		RecentGames:            features.Window{Min: 1, Max: 2},
		HeadToHead:             features.Window{Min: 0, Max: 1},
	}
	extractor, err := features.NewExtractor(features.NewArchive(games), cfg)
	require.NoError(t, err)
	return NewAssembler(extractor, testLogger())
}

func TestBuildTraining(t *testing.T) {
	games := fixtureGames()
	assembler := newTestAssembler(t, games)

	records, summary, err := assembler.BuildTraining(games)
	require.NoError(t, err)

	assert.Equal(t, Summary{Total: 3, Accepted: 2, Dropped: 1}, summary)
	require.Len(t, records, 2)

	assert.Equal(t, int64(2), records[0].GameID)
	assert.Equal(t, models.FeatureVector{-2, -2, -2, 2, 2}, records[0].Features)
	assert.Equal(t, [3]float64{0, 1, 0}, records[0].Label)

	assert.Equal(t, int64(3), records[1].GameID)
	assert.Equal(t, models.FeatureVector{0, 0, 2, 0, -2}, records[1].Features)
	assert.Equal(t, [3]float64{0, 0, 1}, records[1].Label)
	assert.Equal(t, day(10), records[1].Date)
}

func TestBuildTrainingPreservesInputOrder(t *testing.T) {
	games := fixtureGames()
	assembler := newTestAssembler(t, games)

	reversed := []models.Game{games[2], games[1], games[0]}
	records, _, err := assembler.BuildTraining(reversed)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(3), records[0].GameID)
	assert.Equal(t, int64(2), records[1].GameID)
}

func TestBuildTrainingKeepsDuplicates(t *testing.T) {
	games := fixtureGames()
	assembler := newTestAssembler(t, games)

	records, summary, err := assembler.BuildTraining([]models.Game{games[2], games[2]})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 2, summary.Accepted)
}

func TestBuildEvaluationAttachesResultOdd(t *testing.T) {
	games := fixtureGames()
	assembler := newTestAssembler(t, games)

	evaluation := []models.EvaluationGame{
		{Game: games[0], Odds: models.Odds{GameID: 1, Home: 1.8, Draw: 3.5, Away: 4.2}},
		{Game: games[1], Odds: models.Odds{GameID: 2, Home: 2.1, Draw: 3.1, Away: 3.3}},
		{Game: games[2], Odds: models.Odds{GameID: 3, Home: 1.9, Draw: 3.2, Away: 3.4}},
	}

	records, summary, err := assembler.BuildEvaluation(evaluation)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Dropped)
	require.Len(t, records, 2)
	assert.Equal(t, 3.1, records[0].ResultOdd)
	assert.Equal(t, 3.4, records[1].ResultOdd)
	assert.Equal(t, models.FeatureVector{0, 0, 2, 0, -2}, records[1].Features)
}

type failingExtractor struct{ err error }

func (f failingExtractor) Extract(models.Game) (models.FeatureVector, error) {
	return nil, f.err
}

func TestBuildTrainingReturnsUnexpectedErrors(t *testing.T) {
	boom := errors.New("boom")
	assembler := NewAssembler(failingExtractor{err: boom}, testLogger())

	_, _, err := assembler.BuildTraining(fixtureGames())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestBuildTrainingEmpty(t *testing.T) {
	assembler := NewAssembler(failingExtractor{err: features.ErrInsufficientData}, testLogger())

	records, summary, err := assembler.BuildTraining(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, Summary{}, summary)
}

func TestJSONLinesRoundTrip(t *testing.T) {
	records := []models.EvaluationRecord{
		{
			LabeledRecord: models.LabeledRecord{GameID: 7, Date: day(3), Features: models.FeatureVector{1, -1, 0}, Label: [3]float64{1, 0, 0}},
			ResultOdd:     1.95,
		},
		{
			LabeledRecord: models.LabeledRecord{GameID: 8, Date: day(4), Features: models.FeatureVector{0, 2, 2}, Label: [3]float64{0, 0, 1}},
			ResultOdd:     4.5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSONLines(&buf, records))
	assert.Contains(t, buf.String(), `"data":[1,-1,0]`)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))

	decoded, err := ReadEvaluationJSONLines(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestReadEvaluationJSONLinesRejectsGarbage(t *testing.T) {
	_, err := ReadEvaluationJSONLines(bytes.NewBufferString("{\"game_id\": 1}\nnot-json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 2")
}

func TestWriteJSONLinesFile(t *testing.T) {
	records := []models.EvaluationRecord{
		{LabeledRecord: models.LabeledRecord{GameID: 3, Date: day(1), Features: models.FeatureVector{2, 0}, Label: [3]float64{0, 1, 0}}, ResultOdd: 3.1},
	}
	path := filepath.Join(t.TempDir(), "nested", "evaluation.jsonl")

	require.NoError(t, WriteJSONLinesFile(path, records))
	decoded, err := ReadEvaluationJSONLinesFile(path)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)

	assert.Error(t, WriteJSONLinesFile("", records))
}

func TestWriteJSONLinesFileReportsDeviceErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	records := []models.LabeledRecord{{GameID: 1, Features: models.FeatureVector{1}}}

	assert.Error(t, WriteJSONLinesFile("/dev/full", records))
}
