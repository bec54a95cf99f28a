package data

import (
	"context"
	"errors"
	"testing"
	"threadgems/internal/config"
	"threadgems/internal/models"
	"threadgems/internal/threads"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubCollector struct {
	reports []*threads.Report
	err     error
	calls   int
}

func (s *stubCollector) Collect(context.Context) (*threads.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	report := s.reports[s.calls]
	s.calls++
	return report, nil
}

func (s *stubCollector) Accounts() []string {
	return []string{"meta", "threads"}
}

type MockThreadStore struct {
	mock.Mock
}

func (m *MockThreadStore) SaveCuratedThreads(ctx context.Context, list []models.Thread, expiresAt time.Time) error {
	args := m.Called(ctx, list, expiresAt)
	return args.Error(0)
}

func (m *MockThreadStore) RecordDeletions(ctx context.Context, deletions []models.ThreadDeletion) error {
	args := m.Called(ctx, deletions)
	return args.Error(0)
}

var refreshNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func feedCfg() config.FeedConfig {
	return config.FeedConfig{RecentCount: 2, DatasetTTL: 24 * time.Hour, FetchInterval: 6 * time.Hour}
}

func sampleThreads() []models.Thread {
	return []models.Thread{
		{ID: "a", Handle: "meta", Type: models.ThreadTypeImage, Timestamp: "2024-03-01T10:00:00+0000"},
		{ID: "b", Handle: "threads", Type: models.ThreadTypeText, Timestamp: "2024-03-01T09:00:00+0000"},
		{ID: "c", Handle: "meta", Type: models.ThreadTypeText, Timestamp: "2024-03-01T08:00:00+0000"},
	}
}

func TestServiceRefreshPublishesDatasets(t *testing.T) {
	ctx := context.Background()
	cache := NewMemCache(testLogger()).WithClock(func() time.Time { return refreshNow })
	collector := &stubCollector{reports: []*threads.Report{{Threads: sampleThreads()}}}

	store := new(MockThreadStore)
	store.On("SaveCuratedThreads", ctx, mock.Anything, refreshNow.Add(24*time.Hour)).Return(nil)

	service := NewService(collector, cache, store, feedCfg(), testLogger()).WithClock(func() time.Time { return refreshNow })

	result, err := service.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Deleted)

	all, _, err := ReadThreads(ctx, cache, DatasetAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	text, _, _ := ReadThreads(ctx, cache, DatasetText)
	assert.Len(t, text, 2)

	image, _, _ := ReadThreads(ctx, cache, DatasetImage)
	assert.Len(t, image, 1)

	recent, _, _ := ReadThreads(ctx, cache, DatasetRecent)
	require.Len(t, recent, 2)
	assert.Equal(t, "a", recent[0].ID)

	manifest, found, err := ReadManifest(ctx, cache)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, manifest.TotalThreads)
	assert.Equal(t, models.ThreadCounts{Text: 2, Image: 1}, manifest.ByType)
	assert.Equal(t, []string{"meta", "threads"}, manifest.Sources)
	assert.True(t, refreshNow.Add(6*time.Hour).Equal(manifest.NextUpdateRecommended))
	assert.Equal(t, ManifestVersion, manifest.Version)

	store.AssertExpectations(t)
}

func TestServiceRefreshTracksDeletions(t *testing.T) {
	ctx := context.Background()
	cache := NewMemCache(testLogger()).WithClock(func() time.Time { return refreshNow })

	second := sampleThreads()[:1]
	collector := &stubCollector{reports: []*threads.Report{
		{Threads: sampleThreads()},
		{Threads: second},
	}}

	store := new(MockThreadStore)
	store.On("SaveCuratedThreads", ctx, mock.Anything, mock.Anything).Return(nil)
	store.On("RecordDeletions", ctx, mock.MatchedBy(func(deletions []models.ThreadDeletion) bool {
		if len(deletions) != 2 {
			return false
		}
		for _, d := range deletions {
			if d.Reason != DeletionReasonNotFound || d.BatchID == "" || d.BatchID != deletions[0].BatchID {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	service := NewService(collector, cache, store, feedCfg(), testLogger()).WithClock(func() time.Time { return refreshNow })

	_, err := service.Refresh(ctx)
	require.NoError(t, err)

	result, err := service.Refresh(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, result.Deleted)

	store.AssertExpectations(t)
}

func TestServiceRefreshIgnoresFailedAccountsForDeletions(t *testing.T) {
	ctx := context.Background()
	cache := NewMemCache(testLogger())

	collector := &stubCollector{reports: []*threads.Report{
		{Threads: sampleThreads()},
		{Threads: sampleThreads()[:1], Failed: []threads.AccountFailure{{Account: "threads", Err: errors.New("down")}}},
	}}

	service := NewService(collector, cache, nil, feedCfg(), testLogger())

	_, err := service.Refresh(ctx)
	require.NoError(t, err)

	result, err := service.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, result.Deleted)
	assert.Equal(t, []string{"threads"}, result.Failed)
}

func TestServiceRefreshKeepsPreviousDataWhenEmpty(t *testing.T) {
	ctx := context.Background()
	cache := NewMemCache(testLogger())

	collector := &stubCollector{reports: []*threads.Report{
		{Threads: sampleThreads()},
		{Threads: nil},
	}}

	service := NewService(collector, cache, nil, feedCfg(), testLogger())

	_, err := service.Refresh(ctx)
	require.NoError(t, err)

	_, err = service.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNoThreads)

	all, found, _ := ReadThreads(ctx, cache, DatasetAll)
	assert.True(t, found)
	assert.Len(t, all, 3)
}

func TestServiceRefreshCollectorError(t *testing.T) {
	service := NewService(&stubCollector{err: context.Canceled}, NewMemCache(testLogger()), nil, feedCfg(), testLogger())

	_, err := service.Refresh(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}
