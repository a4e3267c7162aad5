// Package dataset turns archived games into labeled training and
// evaluation records.
package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/football-edge/internal/features"
	"github.com/yourusername/football-edge/internal/logger"
	"github.com/yourusername/football-edge/internal/metrics"
	"github.com/yourusername/football-edge/internal/models"
)

// Dataset kinds
const (
	KindTraining   = "training"
	KindEvaluation = "evaluation"
)

// FeatureExtractor produces the feature vector of a target game
type FeatureExtractor interface {
	Extract(game models.Game) (models.FeatureVector, error)
}

// Summary counts what happened to the games fed to a build
type Summary struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}

// Assembler builds datasets from games using a feature extractor
type Assembler struct {
	extractor FeatureExtractor
	logger    *logger.PipelineLogger
}

// NewAssembler creates an assembler
func NewAssembler(extractor FeatureExtractor, log *logrus.Logger) *Assembler {
	if log == nil {
		log = logrus.New()
	}
	return &Assembler{
		extractor: extractor,
		logger:    logger.NewPipelineLogger(log),
	}
}

// BuildTraining extracts and labels every game, silently dropping those
// with insufficient history. Input order is preserved.
func (a *Assembler) BuildTraining(games []models.Game) ([]models.LabeledRecord, Summary, error) {
	start := time.Now()
	records := make([]models.LabeledRecord, 0, len(games))
	summary := Summary{Total: len(games)}

	for _, game := range games {
		record, ok, err := a.label(KindTraining, game)
		if err != nil {
			return nil, summary, err
		}
		if !ok {
			summary.Dropped++
			continue
		}
		records = append(records, record)
		summary.Accepted++
	}

	a.finish(KindTraining, summary, start)
	return records, summary, nil
}

// BuildEvaluation is BuildTraining for games with odds; each record also
// carries the odd paid for its realized result.
func (a *Assembler) BuildEvaluation(games []models.EvaluationGame) ([]models.EvaluationRecord, Summary, error) {
	start := time.Now()
	records := make([]models.EvaluationRecord, 0, len(games))
	summary := Summary{Total: len(games)}

	for _, game := range games {
		record, ok, err := a.label(KindEvaluation, game.Game)
		if err != nil {
			return nil, summary, err
		}
		if !ok {
			summary.Dropped++
			continue
		}
		records = append(records, models.EvaluationRecord{
			LabeledRecord: record,
			ResultOdd:     game.Odds.For(game.Result),
		})
		summary.Accepted++
	}

	a.finish(KindEvaluation, summary, start)
	return records, summary, nil
}

// label returns ok=false for games dropped on insufficient history. Any
// other extraction failure is returned as an error.
func (a *Assembler) label(kind string, game models.Game) (models.LabeledRecord, bool, error) {
	vector, err := a.extractor.Extract(game)
	if err != nil {
		if errors.Is(err, features.ErrInsufficientData) {
			a.logger.LogGameDropped(kind, game.GameID, err)
			metrics.RecordDatasetGame(kind, "dropped")
			return models.LabeledRecord{}, false, nil
		}
		return models.LabeledRecord{}, false, fmt.Errorf("extract game %d: %w", game.GameID, err)
	}
	metrics.RecordDatasetGame(kind, "accepted")
	return models.LabeledRecord{
		GameID:   game.GameID,
		Date:     game.Date,
		Features: vector,
		Label:    game.Result.Label(),
	}, true, nil
}

func (a *Assembler) finish(kind string, summary Summary, start time.Time) {
	elapsed := time.Since(start)
	metrics.RecordDatasetBuild(kind, elapsed.Seconds())
	a.logger.LogDatasetBuilt(kind, summary.Total, summary.Accepted, summary.Dropped, float64(elapsed.Microseconds())/1000)
}
