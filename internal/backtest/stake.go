package backtest

import "github.com/yourusername/football-edge/internal/models"

// DetermineStake sizes a bet with the default boost band
func DetermineStake(confidence float64, policy models.StakePolicy) float64 {
	return DefaultConfig().DetermineStake(confidence, policy)
}

// DetermineStake interpolates linearly from MinBet at the confidence
// threshold towards MaxBet at certainty, steeper inside the boost band,
// clamped to [MinBet, MaxBet].
func (c Config) DetermineStake(confidence float64, policy models.StakePolicy) float64 {
	slope := (policy.MaxBet - policy.MinBet) / (100 - policy.MinConfidence*100)
	if confidence >= c.BoostBandLow && confidence <= c.BoostBandHigh {
		slope *= c.BoostFactor
	}

	stake := policy.MinBet + slope*(confidence*100-policy.MinConfidence*100)
	if stake < policy.MinBet {
		return policy.MinBet
	}
	if stake > policy.MaxBet {
		return policy.MaxBet
	}
	return stake
}
