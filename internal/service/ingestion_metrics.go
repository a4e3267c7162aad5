package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one ingestion run
type IngestionMetrics struct {
	mu                 sync.RWMutex
	StartTime          time.Time
	Duration           time.Duration
	Leagues            int
	GamesFetched       int
	GamesInserted      int
	EvaluationFetched  int
	EvaluationInserted int
	ValidationErrors   int
	Errors             int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{StartTime: time.Now()}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.Leagues = 0
	m.GamesFetched = 0
	m.GamesInserted = 0
	m.EvaluationFetched = 0
	m.EvaluationInserted = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordLeague adds the counts of one ingested league
func (m *IngestionMetrics) RecordLeague(gamesFetched, gamesInserted, evalFetched, evalInserted int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Leagues++
	m.GamesFetched += gamesFetched
	m.GamesInserted += gamesInserted
	m.EvaluationFetched += evalFetched
	m.EvaluationInserted += evalInserted
}

// RecordValidationErrors increments the validation error count
func (m *IngestionMetrics) RecordValidationErrors(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors += n
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Finish stamps the run duration
func (m *IngestionMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// Snapshot returns a copy safe to read while a run is in progress
func (m *IngestionMetrics) Snapshot() IngestionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return IngestionMetrics{
		StartTime:          m.StartTime,
		Duration:           m.Duration,
		Leagues:            m.Leagues,
		GamesFetched:       m.GamesFetched,
		GamesInserted:      m.GamesInserted,
		EvaluationFetched:  m.EvaluationFetched,
		EvaluationInserted: m.EvaluationInserted,
		ValidationErrors:   m.ValidationErrors,
		Errors:             m.Errors,
	}
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{Leagues=%d, Games=%d/%d, Evaluation=%d/%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.Leagues,
		m.GamesInserted,
		m.GamesFetched,
		m.EvaluationInserted,
		m.EvaluationFetched,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
