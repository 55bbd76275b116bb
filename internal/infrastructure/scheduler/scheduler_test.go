package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_RunsJobsPeriodically(t *testing.T) {
	s := New(zap.NewNop())

	var runs atomic.Int64
	require.NoError(t, s.Every("progress-ticker", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	stats := s.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, "progress-ticker", stats[0].Name)
	assert.Equal(t, JobStatusSuccess, stats[0].Status)
	assert.GreaterOrEqual(t, stats[0].Runs, int64(3))
}

func TestScheduler_RecordsFailuresAndPanics(t *testing.T) {
	s := New(zap.NewNop())

	var calls atomic.Int64
	require.NoError(t, s.Every("flaky", 10*time.Millisecond, func(ctx context.Context) error {
		if calls.Add(1)%2 == 0 {
			panic("boom")
		}
		return errors.New("store unavailable")
	}))

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return s.Stats()[0].Failures >= 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	assert.Equal(t, JobStatusFailed, s.Stats()[0].Status)
	assert.NotEmpty(t, s.Stats()[0].LastError)
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	s := New(zap.NewNop())

	release := make(chan struct{})
	require.NoError(t, s.Every("slow", 5*time.Millisecond, func(ctx context.Context) error {
		<-release
		return nil
	}))

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return s.Stats()[0].Skipped > 0 }, time.Second, time.Millisecond)
	close(release)
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_Registration(t *testing.T) {
	s := New(zap.NewNop())
	noop := func(context.Context) error { return nil }

	assert.ErrorIs(t, s.Every("x", 0, noop), ErrInvalidInterval)
	require.NoError(t, s.Every("x", time.Second, noop))
	assert.ErrorIs(t, s.Every("x", time.Second, noop), ErrDuplicateJob)

	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()
	assert.ErrorIs(t, s.Every("y", time.Second, noop), ErrSchedulerRunning)
}

func TestScheduler_StopIdempotent(t *testing.T) {
	s := New(zap.NewNop())
	assert.NoError(t, s.Stop(context.Background()))
}
