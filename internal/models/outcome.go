package models

import "fmt"

// Result represents the outcome of a finished game, encoded the way the
// games table stores it.
type Result int

const (
	ResultAwayWin Result = -1
	ResultDraw    Result = 0
	ResultHomeWin Result = 1
)

// NumOutcomes is the size of the outcome space {home, draw, away}
const NumOutcomes = 3

// Index returns the position of the result in the ordered outcome space
func (r Result) Index() int {
	switch r {
	case ResultHomeWin:
		return 0
	case ResultDraw:
		return 1
	default:
		return 2
	}
}

// Label returns the one-hot encoding of the result
func (r Result) Label() [NumOutcomes]float64 {
	var label [NumOutcomes]float64
	label[r.Index()] = 1
	return label
}

// String returns a readable result name
func (r Result) String() string {
	switch r {
	case ResultHomeWin:
		return "home"
	case ResultDraw:
		return "draw"
	case ResultAwayWin:
		return "away"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Valid reports whether r is one of the three known outcomes
func (r Result) Valid() bool {
	return r == ResultHomeWin || r == ResultDraw || r == ResultAwayWin
}

// ResultFromIndex maps an outcome-space index back to a Result
func ResultFromIndex(i int) (Result, error) {
	switch i {
	case 0:
		return ResultHomeWin, nil
	case 1:
		return ResultDraw, nil
	case 2:
		return ResultAwayWin, nil
	}
	return 0, fmt.Errorf("outcome index %d out of range", i)
}

// ResultFromGoalDifference derives the result from a home-minus-away margin
func ResultFromGoalDifference(diff int) Result {
	switch {
	case diff > 0:
		return ResultHomeWin
	case diff < 0:
		return ResultAwayWin
	default:
		return ResultDraw
	}
}

// Probabilities is an oracle output over {home, draw, away}
type Probabilities [NumOutcomes]float64

// ArgMax returns the predicted outcome index and its probability mass.
// The first maximum wins on ties.
func (p Probabilities) ArgMax() (int, float64) {
	best := 0
	for i := 1; i < NumOutcomes; i++ {
		if p[i] > p[best] {
			best = i
		}
	}
	return best, p[best]
}

// Sum returns the total probability mass
func (p Probabilities) Sum() float64 {
	return p[0] + p[1] + p[2]
}
