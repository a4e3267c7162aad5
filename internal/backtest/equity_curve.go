package backtest

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/yourusername/football-edge/internal/models"
)

// EquityPoint is the bankroll after one settled wager
type EquityPoint struct {
	Sequence int     `json:"sequence"`
	GameID   int64   `json:"game_id"`
	Value    float64 `json:"value"`
	Drawdown float64 `json:"drawdown"`
}

// EquityCurve is the bankroll path of a run, starting bankroll first
type EquityCurve []EquityPoint

// BuildEquityCurve replays a ledger into a bankroll path with running drawdown
func BuildEquityCurve(startingBankroll float64, ledger []models.Wager) EquityCurve {
	curve := make(EquityCurve, 0, len(ledger)+1)
	curve = append(curve, EquityPoint{Value: startingBankroll})
	peak := startingBankroll
	for _, wager := range ledger {
		if wager.Bankroll > peak {
			peak = wager.Bankroll
		}
		drawdown := 0.0
		if peak > 0 && wager.Bankroll < peak {
			drawdown = (peak - wager.Bankroll) / peak
		}
		curve = append(curve, EquityPoint{
			Sequence: wager.Sequence,
			GameID:   wager.GameID,
			Value:    wager.Bankroll,
			Drawdown: drawdown,
		})
	}
	return curve
}

// MaxDrawdown returns the largest peak-to-trough fraction on the curve
func (e EquityCurve) MaxDrawdown() float64 {
	maxDrawdown := 0.0
	for _, point := range e {
		if point.Drawdown > maxDrawdown {
			maxDrawdown = point.Drawdown
		}
	}
	return maxDrawdown
}

// Peak returns the highest bankroll reached
func (e EquityCurve) Peak() float64 {
	peak := 0.0
	for i, point := range e {
		if i == 0 || point.Value > peak {
			peak = point.Value
		}
	}
	return peak
}

// ToCSV exports equity curve to CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("sequence,game_id,value,drawdown\n")
	for _, point := range e {
		buf.WriteString(strconv.Itoa(point.Sequence))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatInt(point.GameID, 10))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Value))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Drawdown))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports equity curve to JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
