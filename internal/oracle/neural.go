package oracle

import (
	"context"
	"fmt"
	"os"
	"sync"

	deep "github.com/patrikeh/go-deep"

	"github.com/yourusername/football-edge/internal/models"
)

// NeuralOracle evaluates a feed-forward network trained offline. A forward
// pass writes neuron state in place, so passes are serialised.
type NeuralOracle struct {
	mu     sync.Mutex
	net    *deep.Neural
	inputs int
}

// NewNeuralOracle wraps an in-memory network expecting inputs features
func NewNeuralOracle(net *deep.Neural, inputs int) (*NeuralOracle, error) {
	if net == nil {
		return nil, fmt.Errorf("network is required")
	}
	if inputs <= 0 {
		return nil, fmt.Errorf("inputs must be positive, got %d", inputs)
	}
	if net.Config != nil && net.Config.Inputs != inputs {
		return nil, fmt.Errorf("%w: network takes %d inputs, vectors have %d", ErrInputLength, net.Config.Inputs, inputs)
	}
	return &NeuralOracle{net: net, inputs: inputs}, nil
}

// LoadNeuralOracle reads a network dump written by the trainer
func LoadNeuralOracle(path string, inputs int) (*NeuralOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	net, err := deep.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}
	return NewNeuralOracle(net, inputs)
}

// NewClassifierConfig returns the network layout used for 1X2 classification
func NewClassifierConfig(inputs int, hidden ...int) *deep.Config {
	layout := append(append([]int(nil), hidden...), models.NumOutcomes)
	return &deep.Config{
		Inputs:     inputs,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeMultiClass,
		Weight:     deep.NewNormal(1.0, 0.0),
		Bias:       true,
	}
}

// Predict runs a forward pass
func (o *NeuralOracle) Predict(ctx context.Context, features []float64) (models.Probabilities, error) {
	if err := ctx.Err(); err != nil {
		return models.Probabilities{}, err
	}
	if len(features) != o.inputs {
		return models.Probabilities{}, fmt.Errorf("%w: expected %d, got %d", ErrInputLength, o.inputs, len(features))
	}
	o.mu.Lock()
	raw := o.net.Predict(features)
	o.mu.Unlock()
	return Normalize(raw)
}
