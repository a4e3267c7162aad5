package features

import "fmt"

// Window bounds how many historical values a segment needs (Min) and
// holds (Max)
type Window struct {
	Min int
	Max int
}

// Validate checks the window bounds
func (w Window) Validate() error {
	if w.Max <= 0 {
		return fmt.Errorf("window max must be positive, got %d", w.Max)
	}
	if w.Min < 0 || w.Min > w.Max {
		return fmt.Errorf("window min must be between 0 and %d, got %d", w.Max, w.Min)
	}
	return nil
}

// Config controls staleness bounds and window sizes for extraction
type Config struct {
	MaxDaysSinceGame       int
	MaxDaysSinceHeadToHead int
	RecentGames            Window
	HeadToHead             Window
}

// DefaultConfig returns the settings used when none are configured
func DefaultConfig() Config {
	return Config{
		MaxDaysSinceGame:       365,
		MaxDaysSinceHeadToHead: 1825,
		RecentGames:            Window{Min: 3, Max: 5},
		HeadToHead:             Window{Min: 1, Max: 3},
	}
}

// VectorLength returns the length of every vector produced under this config
func (c Config) VectorLength() int {
	return c.HeadToHead.Max + 2*c.RecentGames.Max
}

// Validate checks the extraction settings
func (c Config) Validate() error {
	if c.MaxDaysSinceGame <= 0 {
		return fmt.Errorf("max days since game must be positive")
	}
	if c.MaxDaysSinceHeadToHead <= 0 {
		return fmt.Errorf("max days since head-to-head must be positive")
	}
	if err := c.RecentGames.Validate(); err != nil {
		return fmt.Errorf("recent games: %w", err)
	}
	if err := c.HeadToHead.Validate(); err != nil {
		return fmt.Errorf("head-to-head: %w", err)
	}
	return nil
}
