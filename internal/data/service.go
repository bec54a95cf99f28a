package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"threadgems/internal/config"
	"threadgems/internal/metrics"
	"threadgems/internal/models"
	"threadgems/internal/threads"
	"time"

	"github.com/google/uuid"
)

const DeletionReasonNotFound = "not_found_in_api"

var ErrNoThreads = errors.New("aggregation returned no threads")

// Collector produces the curated thread list.
type Collector interface {
	Collect(ctx context.Context) (*threads.Report, error)
	Accounts() []string
}

// ThreadStore persists curated threads and deletion history. It is optional.
type ThreadStore interface {
	SaveCuratedThreads(ctx context.Context, threads []models.Thread, expiresAt time.Time) error
	RecordDeletions(ctx context.Context, deletions []models.ThreadDeletion) error
}

type RefreshResult struct {
	Manifest models.Manifest
	Deleted  []string
	Failed   []string
}

type Service struct {
	collector     Collector
	cache         CacheProvider
	store         ThreadStore
	logger        *slog.Logger
	recentCount   int
	ttl           time.Duration
	fetchInterval time.Duration
	clock         func() time.Time
}

func NewService(collector Collector, cache CacheProvider, store ThreadStore, cfg config.FeedConfig, logger *slog.Logger) *Service {
	recent := cfg.RecentCount
	if recent <= 0 {
		recent = config.DefaultFeedConfig.RecentCount
	}
	ttl := cfg.DatasetTTL
	if ttl <= 0 {
		ttl = config.DefaultFeedConfig.DatasetTTL
	}
	interval := cfg.FetchInterval
	if interval <= 0 {
		interval = config.DefaultFeedConfig.FetchInterval
	}

	return &Service{
		collector:     collector,
		cache:         cache,
		store:         store,
		logger:        logger,
		recentCount:   recent,
		ttl:           ttl,
		fetchInterval: interval,
		clock:         time.Now,
	}
}

func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Refresh aggregates the feed and republishes every dataset. When nothing is
// collected the previous datasets are left in place.
func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	start := time.Now()
	defer func() {
		metrics.FeedRefreshDuration.Observe(time.Since(start).Seconds())
	}()

	report, err := s.collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect threads: %w", err)
	}

	result := &RefreshResult{}
	failedAccounts := make(map[string]bool, len(report.Failed))
	for _, failure := range report.Failed {
		failedAccounts[failure.Account] = true
		result.Failed = append(result.Failed, failure.Account)
	}

	if len(report.Threads) == 0 {
		s.logger.Warn("no threads collected, keeping previous datasets", "failed_accounts", result.Failed)
		return result, ErrNoThreads
	}

	now := s.clock().UTC()
	expiresAt := now.Add(s.ttl)

	previous, _, err := ReadThreads(ctx, s.cache, DatasetAll)
	if err != nil {
		s.logger.Warn("previous dataset unreadable, skipping deletion tracking", "error", err)
	}
	deletions := findDeletions(previous, report.Threads, failedAccounts, now)
	if len(deletions) > 0 {
		for _, deletion := range deletions {
			result.Deleted = append(result.Deleted, deletion.ThreadID)
		}
		s.logger.Info("threads removed upstream", "count", len(deletions), "ids", result.Deleted)
		metrics.ThreadDeletions.Add(float64(len(deletions)))

		if s.store != nil {
			if err := s.store.RecordDeletions(ctx, deletions); err != nil {
				s.logger.Error("failed to record thread deletions", "error", err)
			}
		}
	}

	var text, image []models.Thread
	for _, thread := range report.Threads {
		if thread.Type == models.ThreadTypeText {
			text = append(text, thread)
		} else {
			image = append(image, thread)
		}
	}

	recent := report.Threads
	if len(recent) > s.recentCount {
		recent = recent[:s.recentCount]
	}

	datasets := []struct {
		name    string
		threads []models.Thread
	}{
		{DatasetAll, report.Threads},
		{DatasetText, nonNil(text)},
		{DatasetImage, nonNil(image)},
		{DatasetRecent, recent},
	}

	for _, dataset := range datasets {
		entry, err := NewEntry(dataset.name, dataset.threads, len(dataset.threads), now, expiresAt)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, dataset.name, entry)
		metrics.FeedThreads.WithLabelValues(dataset.name).Set(float64(len(dataset.threads)))
	}

	result.Manifest = models.Manifest{
		GeneratedAt:           now,
		TotalThreads:          len(report.Threads),
		ByType:                models.ThreadCounts{Text: len(text), Image: len(image)},
		Sources:               s.collector.Accounts(),
		NextUpdateRecommended: now.Add(s.fetchInterval),
		Version:               ManifestVersion,
	}

	entry, err := NewEntry(KeyManifest, result.Manifest, result.Manifest.TotalThreads, now, expiresAt)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, KeyManifest, entry)

	if s.store != nil {
		if err := s.store.SaveCuratedThreads(ctx, report.Threads, expiresAt); err != nil {
			s.logger.Error("failed to save curated threads", "error", err)
		}
	}

	s.logger.Info("feed refreshed",
		"total", result.Manifest.TotalThreads,
		"text", len(text),
		"image", len(image),
		"deleted", len(result.Deleted),
		"duration", time.Since(start))

	return result, nil
}

// findDeletions lists threads present before but missing now. Threads of an
// account that failed this round are not counted as deleted.
func findDeletions(previous, current []models.Thread, failedAccounts map[string]bool, now time.Time) []models.ThreadDeletion {
	if len(previous) == 0 {
		return nil
	}

	present := make(map[string]struct{}, len(current))
	for _, thread := range current {
		present[thread.ID] = struct{}{}
	}

	batchID := uuid.NewString()
	var deletions []models.ThreadDeletion
	for _, thread := range previous {
		if _, ok := present[thread.ID]; ok {
			continue
		}
		if failedAccounts[thread.Handle] {
			continue
		}
		deletions = append(deletions, models.ThreadDeletion{
			BatchID:   batchID,
			ThreadID:  thread.ID,
			Handle:    thread.Handle,
			Reason:    DeletionReasonNotFound,
			DeletedAt: now,
		})
	}
	return deletions
}

func nonNil(threads []models.Thread) []models.Thread {
	if threads == nil {
		return []models.Thread{}
	}
	return threads
}
