// Package oracle adapts outcome predictors to a single interface.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/yourusername/football-edge/internal/models"
)

var (
	// ErrInvalidPrediction indicates the predictor returned something that is not a distribution
	ErrInvalidPrediction = errors.New("invalid prediction")

	// ErrInputLength indicates a feature vector of the wrong length
	ErrInputLength = errors.New("feature vector length mismatch")

	// ErrServiceUnavailable indicates the remote model service is unreachable
	ErrServiceUnavailable = errors.New("model service unavailable")
)

// Oracle returns a probability distribution over {home, draw, away}
type Oracle interface {
	Predict(ctx context.Context, features []float64) (models.Probabilities, error)
}

// Func adapts a plain function to Oracle
type Func func(ctx context.Context, features []float64) (models.Probabilities, error)

// Predict calls f
func (f Func) Predict(ctx context.Context, features []float64) (models.Probabilities, error) {
	return f(ctx, features)
}

// Normalize validates raw outputs and rescales them to sum to one
func Normalize(raw []float64) (models.Probabilities, error) {
	var probs models.Probabilities
	if len(raw) != models.NumOutcomes {
		return probs, fmt.Errorf("%w: expected %d outputs, got %d", ErrInvalidPrediction, models.NumOutcomes, len(raw))
	}
	sum := 0.0
	for i, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return probs, fmt.Errorf("%w: output %d is %v", ErrInvalidPrediction, i, v)
		}
		sum += v
	}
	if sum == 0 {
		return probs, fmt.Errorf("%w: outputs sum to zero", ErrInvalidPrediction)
	}
	for i, v := range raw {
		probs[i] = v / sum
	}
	return probs, nil
}
