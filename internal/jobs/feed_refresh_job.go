package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"threadgems/internal/data"
	"time"
)

// Refresher republishes the curated feed.
type Refresher interface {
	Refresh(ctx context.Context) (*data.RefreshResult, error)
}

type FeedRefreshJob struct {
	service  Refresher
	interval time.Duration
	logger   *slog.Logger
}

func NewFeedRefreshJob(service Refresher, interval time.Duration, logger *slog.Logger) *FeedRefreshJob {
	return &FeedRefreshJob{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

func (j *FeedRefreshJob) Name() string {
	return "feed_refresh"
}

func (j *FeedRefreshJob) RequiresLeadership() bool {
	return true
}

func (j *FeedRefreshJob) Interval() time.Duration {
	return j.interval
}

// Run refreshes once immediately and then on every tick until ctx ends.
func (j *FeedRefreshJob) Run(ctx context.Context) error {
	if j.interval <= 0 {
		return fmt.Errorf("non-positive refresh interval: %s", j.interval)
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug("feed refresh canceled")
			return ctx.Err()
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *FeedRefreshJob) refresh(ctx context.Context) {
	result, err := j.service.Refresh(ctx)
	switch {
	case errors.Is(err, data.ErrNoThreads):
		j.logger.Warn("feed refresh produced no threads, keeping previous data", "next_in", j.interval)
	case err != nil:
		if ctx.Err() != nil {
			return
		}
		j.logger.Error("feed refresh failed", "error", err, "next_in", j.interval)
	default:
		j.logger.Info("feed refreshed",
			"threads", result.Manifest.TotalThreads,
			"deleted", len(result.Deleted),
			"failed_accounts", result.Failed,
		)
	}
}
