package logger

import (
	"github.com/sirupsen/logrus"
)

// PipelineLogger logs dataset assembly and ingestion events.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithField("component", "dataset"),
	}
}

// LogGameDropped logs a game excluded from a dataset.
func (pl *PipelineLogger) LogGameDropped(kind string, gameID int64, reason error) {
	pl.WithFields(logrus.Fields{
		"kind":    kind,
		"game_id": gameID,
		"reason":  reason.Error(),
	}).Debug("Game dropped from dataset")
}

// LogDatasetBuilt logs the summary of an assembled dataset.
func (pl *PipelineLogger) LogDatasetBuilt(kind string, total, accepted, dropped int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"kind":        kind,
		"total":       total,
		"accepted":    accepted,
		"dropped":     dropped,
		"duration_ms": durationMs,
	}).Info("Dataset built")
}

// LogIngestion logs a league season fetched from the football API.
func (pl *PipelineLogger) LogIngestion(leagueID int64, season, games, inserted int) {
	pl.WithFields(logrus.Fields{
		"league_id": leagueID,
		"season":    season,
		"games":     games,
		"inserted":  inserted,
	}).Info("League season ingested")
}

// LogExtraEvaluation logs the outcome of a CSV odds import.
func (pl *PipelineLogger) LogExtraEvaluation(source string, rows, matched int) {
	pl.WithFields(logrus.Fields{
		"source":  source,
		"rows":    rows,
		"matched": matched,
	}).Info("Extra evaluation games imported")
}
