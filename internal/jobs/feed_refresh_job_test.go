package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"threadgems/internal/data"
	"threadgems/internal/models"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) (*data.RefreshResult, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &data.RefreshResult{Manifest: models.Manifest{TotalThreads: 3}}, nil
}

type staticLeadership struct {
	leader atomic.Bool
}

func (s *staticLeadership) IsLeader() bool {
	return s.leader.Load()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFeedRefreshJobRefreshesImmediatelyAndOnTick(t *testing.T) {
	refresher := &countingRefresher{}
	job := NewFeedRefreshJob(refresher, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- job.Run(ctx) }()

	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestFeedRefreshJobKeepsRunningAfterFailures(t *testing.T) {
	for _, err := range []error{data.ErrNoThreads, errors.New("graph api down")} {
		refresher := &countingRefresher{err: err}
		job := NewFeedRefreshJob(refresher, 5*time.Millisecond, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- job.Run(ctx) }()

		assert.Eventually(t, func() bool { return refresher.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		cancel()
		<-done
	}
}

func TestFeedRefreshJobRejectsZeroInterval(t *testing.T) {
	job := NewFeedRefreshJob(&countingRefresher{}, 0, discardLogger())

	require.Error(t, job.Run(context.Background()))
}

func TestJobManagerWithoutElectionRunsLeaderJobs(t *testing.T) {
	refresher := &countingRefresher{}
	jm := NewJobManager(nil, 0, discardLogger())
	jm.Register(NewFeedRefreshJob(refresher, time.Hour, discardLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	jm.Start(ctx)

	assert.Eventually(t, func() bool { return refresher.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, jm.Running("feed_refresh"))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	jm.Shutdown(shutdownCtx)
	assert.False(t, jm.Running("feed_refresh"))
}

func TestJobManagerFollowsLeadership(t *testing.T) {
	refresher := &countingRefresher{}
	leadership := &staticLeadership{}
	jm := NewJobManager(leadership, 5*time.Millisecond, discardLogger())
	jm.Register(NewFeedRefreshJob(refresher, time.Hour, discardLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	jm.Start(ctx)

	time.Sleep(20 * time.Millisecond)
	assert.False(t, jm.Running("feed_refresh"))
	assert.Equal(t, int32(0), refresher.calls.Load())

	leadership.leader.Store(true)
	assert.Eventually(t, func() bool { return jm.Running("feed_refresh") }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return refresher.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	leadership.leader.Store(false)
	assert.Eventually(t, func() bool { return !jm.Running("feed_refresh") }, time.Second, 5*time.Millisecond)

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	jm.Shutdown(shutdownCtx)
}
