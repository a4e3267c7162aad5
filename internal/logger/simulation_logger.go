package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for bankroll simulations.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogPolicyEvaluated logs the result of a single stake-policy run.
func (sl *SimulationLogger) LogPolicyEvaluated(policy string, gain float64, betsMade int, bankroll float64) {
	sl.WithFields(logrus.Fields{
		"policy":    policy,
		"gain":      gain,
		"bets_made": betsMade,
		"bankroll":  bankroll,
	}).Debug("Stake policy evaluated")
}

// LogPolicyRejected logs a policy that produced no usable result.
func (sl *SimulationLogger) LogPolicyRejected(policy string, reason error) {
	sl.WithFields(logrus.Fields{
		"policy": policy,
		"reason": reason.Error(),
	}).Debug("Stake policy rejected")
}

// LogBestPolicy logs the winner of an optimization run.
func (sl *SimulationLogger) LogBestPolicy(runID, policy string, gain float64, evaluated, rejected int) {
	sl.WithFields(logrus.Fields{
		"run_id":    runID,
		"policy":    policy,
		"gain":      gain,
		"evaluated": evaluated,
		"rejected":  rejected,
	}).Info("Best stake policy selected")
}

// LogInsolvency logs a bankroll falling below the minimum stake.
func (sl *SimulationLogger) LogInsolvency(policy string, gameID int64, bankroll float64) {
	sl.WithFields(logrus.Fields{
		"policy":     policy,
		"game_id":    gameID,
		"bankroll":   bankroll,
		"event_type": "insolvent",
	}).Warn("Bankroll exhausted")
}
