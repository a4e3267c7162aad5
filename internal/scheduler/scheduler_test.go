package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/football-edge/internal/service"
)

type countingIngester struct {
	calls int32
	err   error
	block chan struct{}
}

func (c *countingIngester) IngestAll(ctx context.Context) (*service.IngestionMetrics, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.block != nil {
		select {
		case <-c.block:
		case <-ctx.Done():
			return service.NewIngestionMetrics(), ctx.Err()
		}
	}
	return service.NewIngestionMetrics(), c.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestScheduleValidation(t *testing.T) {
	s := NewScheduler(&countingIngester{}, quietLogger())

	assert.Error(t, s.ScheduleIngestion("not a cron"))
	assert.Error(t, s.Start(), "no jobs scheduled")

	require.NoError(t, s.ScheduleIngestion("0 0 6 * * *"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleIngestion("@daily"))

	next := s.GetNextRun()
	assert.False(t, next.IsZero())
	assert.Equal(t, 6, next.UTC().Hour())
	assert.Len(t, s.Entries(), 1)
}

func TestRunNowRecordsOutcome(t *testing.T) {
	ingestErr := errors.New("league 39 failed")
	ingester := &countingIngester{err: ingestErr}
	s := NewScheduler(ingester, quietLogger())

	err := s.RunNow(context.Background())
	assert.ErrorIs(t, err, ingestErr)

	last, lastErr := s.LastRun()
	assert.False(t, last.IsZero())
	assert.ErrorIs(t, lastErr, ingestErr)

	ingester.err = nil
	require.NoError(t, s.RunNow(context.Background()))
	_, lastErr = s.LastRun()
	assert.NoError(t, lastErr)
	assert.Equal(t, int32(2), atomic.LoadInt32(&ingester.calls))
}

func TestScheduledJobRuns(t *testing.T) {
	ingester := &countingIngester{}
	s := NewScheduler(ingester, quietLogger())
	require.NoError(t, s.ScheduleIngestion("@every 1s"))
	require.NoError(t, s.Start())

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&ingester.calls) >= 1
	}, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
}

func TestStopCancelsStuckJob(t *testing.T) {
	ingester := &countingIngester{block: make(chan struct{})}
	s := NewScheduler(ingester, quietLogger())
	s.gracefulTimeout = 50 * time.Millisecond
	require.NoError(t, s.ScheduleIngestion("@every 1s"))
	require.NoError(t, s.Start())

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&ingester.calls) >= 1
	}, 3*time.Second, 20*time.Millisecond)

	assert.Error(t, s.Stop())
	_, lastErr := s.LastRun()
	assert.ErrorIs(t, lastErr, context.Canceled)
}

func TestStopWhenNotRunning(t *testing.T) {
	s := NewScheduler(&countingIngester{}, quietLogger())
	assert.NoError(t, s.Stop())
}
