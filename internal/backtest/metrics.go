package backtest

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/football-edge/internal/models"
)

// Stats summarizes a completed simulation run
type Stats struct {
	Gain          float64 `json:"gain"`
	BiggestWin    float64 `json:"biggest_win"`
	BiggestLoss   float64 `json:"biggest_loss"`
	AverageBet    float64 `json:"average_bet"`
	AverageGain   float64 `json:"average_gain"`
	NoBets        float64 `json:"no_bets"`
	BetsWon       float64 `json:"bets_won"`
	BetsLost      float64 `json:"bets_lost"`
	BetsMade      int     `json:"bets_made"`
	BetsWonCount  int     `json:"bets_won_count"`
	TotalGames    int     `json:"total_games"`
	FinalBankroll float64 `json:"final_bankroll"`
}

// CalculateStats derives the run summary. The caller guarantees at least
// one bet was made.
func CalculateStats(state *BankrollState, totalGames int) Stats {
	gain := state.Gain()
	made := float64(state.BetsMade)
	games := float64(totalGames)

	return Stats{
		Gain:          gain,
		BiggestWin:    state.BiggestWin,
		BiggestLoss:   state.BiggestLoss,
		AverageBet:    math.RoundToEven(state.StakeSum / made),
		AverageGain:   gain / made,
		NoBets:        roundTo(float64(totalGames-state.BetsMade)/games, 3),
		BetsWon:       roundTo(float64(state.BetsWon)/games, 3),
		BetsLost:      roundTo(float64(state.BetsMade-state.BetsWon)/games, 3),
		BetsMade:      state.BetsMade,
		BetsWonCount:  state.BetsWon,
		TotalGames:    totalGames,
		FinalBankroll: state.CurrentBankroll,
	}
}

// ToPolicyResult converts stats to a results-table row
func (s Stats) ToPolicyResult(runID uuid.UUID, policy models.StakePolicy) models.PolicyResult {
	return models.PolicyResult{
		RunID:       runID,
		Policy:      policy,
		Gain:        s.Gain,
		BiggestWin:  s.BiggestWin,
		BiggestLoss: s.BiggestLoss,
		AverageBet:  s.AverageBet,
		AverageGain: s.AverageGain,
		NoBets:      s.NoBets,
		BetsWon:     s.BetsWon,
		BetsLost:    s.BetsLost,
		CreatedAt:   time.Now().UTC(),
	}
}

// ToJSON returns stats as JSON
func (s Stats) ToJSON() string {
	data, _ := json.Marshal(s)
	return string(data)
}

// roundTo rounds half to even at the given number of decimals
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}
