package models

import "time"

// FeatureVector is the head-to-head segment followed by the home-form
// and away-form segments, each value a goal difference signed from the
// perspective of the team of interest.
type FeatureVector []int

// Floats converts the vector to the oracle input representation
func (f FeatureVector) Floats() []float64 {
	out := make([]float64, len(f))
	for i, v := range f {
		out[i] = float64(v)
	}
	return out
}

// LabeledRecord is one training row
type LabeledRecord struct {
	GameID   int64                `json:"game_id"`
	Date     time.Time            `json:"date"`
	Features FeatureVector        `json:"data"`
	Label    [NumOutcomes]float64 `json:"label"`
}

// Outcome returns the realized result encoded by the label
func (r LabeledRecord) Outcome() int {
	for i, v := range r.Label {
		if v == 1 {
			return i
		}
	}
	return -1
}

// EvaluationRecord is a labeled record carrying the odd of the realized result
type EvaluationRecord struct {
	LabeledRecord
	ResultOdd float64 `json:"result_odd"`
}
