package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yourusername/football-edge/internal/models"
)

// GenerateConsoleReport formats an optimization for terminal output
func GenerateConsoleReport(result *OptimizationResult, startingBankroll float64) string {
	curve := BuildEquityCurve(startingBankroll, result.Ledger)
	stats := result.BestStats

	var builder strings.Builder
	builder.WriteString("Stake Policy Optimization\n")
	builder.WriteString("=========================\n")
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", result.RunID))
	builder.WriteString(fmt.Sprintf("Candidates: %d evaluated, %d rejected\n", result.Evaluated, result.Rejected))
	builder.WriteString(fmt.Sprintf("Best Policy: min bet %.2f, max bet %.2f, min confidence %.2f\n",
		result.Best.MinBet, result.Best.MaxBet, result.Best.MinConfidence))
	builder.WriteString(fmt.Sprintf("Gain: %.2f\n", stats.Gain))
	builder.WriteString(fmt.Sprintf("Final Bankroll: %.2f\n", stats.FinalBankroll))
	builder.WriteString(fmt.Sprintf("Bets Made: %d of %d games\n", stats.BetsMade, stats.TotalGames))
	builder.WriteString(fmt.Sprintf("Biggest Win: %.2f\n", stats.BiggestWin))
	builder.WriteString(fmt.Sprintf("Biggest Loss: %.2f\n", stats.BiggestLoss))
	builder.WriteString(fmt.Sprintf("Average Bet: %.0f\n", stats.AverageBet))
	builder.WriteString(fmt.Sprintf("Average Gain: %.2f\n", stats.AverageGain))
	builder.WriteString(fmt.Sprintf("No Bets / Won / Lost: %.3f / %.3f / %.3f\n", stats.NoBets, stats.BetsWon, stats.BetsLost))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%%\n", curve.MaxDrawdown()*100))
	return builder.String()
}

var resultsHeader = []string{
	"min_bet_limit", "max_bet_limit", "min_prediction_confidence", "gain", "biggest_win",
	"biggest_loss", "average_bet", "average_gain", "no_bets", "bets_won", "bets_lost",
}

// WriteResultsCSV writes the results table in grid order
func WriteResultsCSV(w io.Writer, results []models.PolicyResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(resultsHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			csvFloat(r.Policy.MinBet), csvFloat(r.Policy.MaxBet), csvFloat(r.Policy.MinConfidence),
			csvFloat(r.Gain), csvFloat(r.BiggestWin), csvFloat(r.BiggestLoss),
			csvFloat(r.AverageBet), csvFloat(r.AverageGain),
			csvFloat(r.NoBets), csvFloat(r.BetsWon), csvFloat(r.BetsLost),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteLedgerCSV writes the bet ledger of the best policy
func WriteLedgerCSV(w io.Writer, ledger []models.Wager) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"game_id", "bet", "odd", "gain", "money"}); err != nil {
		return err
	}
	for _, wager := range ledger {
		row := []string{
			strconv.FormatInt(wager.GameID, 10),
			csvFloat(wager.Stake), csvFloat(wager.Odd), csvFloat(wager.Gain), csvFloat(wager.Bankroll),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// GenerateCSVExport writes results.csv and ledger.csv into dir
func GenerateCSVExport(result *OptimizationResult, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeFile(filepath.Join(dir, "results.csv"), func(w io.Writer) error {
		return WriteResultsCSV(w, result.Results)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "ledger.csv"), func(w io.Writer) error {
		return WriteLedgerCSV(w, result.Ledger)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

func csvFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
