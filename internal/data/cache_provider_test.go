package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"threadgems/internal/config"
	"threadgems/internal/models"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func createTestThreads(size int) []models.Thread {
	list := make([]models.Thread, size)
	for i := range list {
		list[i] = models.Thread{
			ID:        fmt.Sprintf("thread-%d", i),
			Handle:    "meta",
			Content:   "design update",
			Type:      models.ThreadTypeText,
			Timestamp: time.Unix(1700000000+int64(i), 0).UTC().Format(time.RFC3339),
		}
	}
	return list
}

func TestMemCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemCache(testLogger())

	_, ok := cache.Get(ctx, DatasetAll)
	assert.False(t, ok)

	entry, err := NewEntry(DatasetAll, createTestThreads(3), 3, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	cache.Set(ctx, DatasetAll, entry)

	got, ok := cache.Get(ctx, DatasetAll)
	require.True(t, ok)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, DatasetAll, got.Name)
	assert.Equal(t, 1, cache.Size(ctx))
	assert.Equal(t, []string{DatasetAll}, cache.ListAll(ctx))

	cache.Delete(ctx, DatasetAll)
	assert.Zero(t, cache.Size(ctx))
}

func TestMemCacheDropsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	cache := NewMemCache(testLogger())

	cache.Set(ctx, DatasetText, CachedData{JSONBytes: []byte(`[]`), ExpiresAt: time.Now().Add(-time.Second)})

	_, ok := cache.Get(ctx, DatasetText)
	assert.False(t, ok)
	assert.Zero(t, cache.Size(ctx))
}

func TestMemCacheExpiryFollowsClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemCache(testLogger()).WithClock(func() time.Time { return now })

	cache.Set(ctx, DatasetAll, CachedData{JSONBytes: []byte(`[]`), ExpiresAt: now.Add(time.Hour)})

	got, ok := cache.Get(ctx, DatasetAll)
	require.True(t, ok, "entry is fresh relative to the injected clock")
	assert.Equal(t, now, got.Timestamp)

	now = now.Add(2 * time.Hour)
	_, ok = cache.Get(ctx, DatasetAll)
	assert.False(t, ok)
	assert.Zero(t, cache.Size(ctx))
}

func TestReadThreads(t *testing.T) {
	ctx := context.Background()
	cache := NewMemCache(testLogger())

	_, found, err := ReadThreads(ctx, cache, DatasetAll)
	assert.False(t, found)
	assert.NoError(t, err)

	cache.Set(ctx, DatasetAll, CachedData{JSONBytes: []byte(`not json`)})
	_, found, err = ReadThreads(ctx, cache, DatasetAll)
	assert.True(t, found)
	assert.Error(t, err)

	entry, err := NewEntry(DatasetAll, createTestThreads(2), 2, time.Now(), time.Time{})
	require.NoError(t, err)
	cache.Set(ctx, DatasetAll, entry)

	threads, found, err := ReadThreads(ctx, cache, DatasetAll)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, threads, 2)
}

func TestHybridCache(t *testing.T) {
	ctx := context.Background()

	t.Run("memory hit skips redis", func(t *testing.T) {
		mockClient := new(MockRedisCacheClient)
		hybrid := NewHybridCache(NewMemCache(testLogger()), NewRedisCache(mockClient, testLogger()), testLogger())

		hybrid.mem.Set(ctx, DatasetAll, CachedData{JSONBytes: []byte(`[]`), ExpiresAt: time.Now().Add(time.Hour)})

		_, ok := hybrid.Get(ctx, DatasetAll)
		assert.True(t, ok)
		mockClient.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("redis hit repopulates memory", func(t *testing.T) {
		mockClient := new(MockRedisCacheClient)
		hybrid := NewHybridCache(NewMemCache(testLogger()), NewRedisCache(mockClient, testLogger()), testLogger())

		payload, _ := json.Marshal(CachedData{Name: DatasetAll, JSONBytes: []byte(`[]`), ExpiresAt: time.Now().Add(time.Hour)})
		mockClient.On("Get", ctx, "cache:feed:all").Return(createStringCmd(string(payload), nil)).Once()

		_, ok := hybrid.Get(ctx, DatasetAll)
		assert.True(t, ok)
		assert.Equal(t, 1, hybrid.mem.Size(ctx))

		_, ok = hybrid.Get(ctx, DatasetAll)
		assert.True(t, ok)
		mockClient.AssertExpectations(t)
	})

	t.Run("set writes both layers", func(t *testing.T) {
		mockClient := new(MockRedisCacheClient)
		hybrid := NewHybridCache(NewMemCache(testLogger()), NewRedisCache(mockClient, testLogger()), testLogger())

		mockClient.On("Set", ctx, "cache:feed:manifest", mock.Anything, time.Duration(0)).Return(createStatusCmd(nil))

		hybrid.Set(ctx, KeyManifest, CachedData{JSONBytes: []byte(`{}`)})
		assert.Equal(t, 1, hybrid.mem.Size(ctx))
		mockClient.AssertExpectations(t)
	})
}

func TestNewCacheProvider(t *testing.T) {
	provider, err := NewCacheProvider(&config.Config{Cache: config.CacheConfig{Type: "memory"}}, nil, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemCache{}, provider)

	_, err = NewCacheProvider(&config.Config{Cache: config.CacheConfig{Type: "redis"}}, nil, testLogger())
	assert.Error(t, err)

	_, err = NewCacheProvider(&config.Config{Cache: config.CacheConfig{Type: "disk"}}, nil, testLogger())
	assert.Error(t, err)
}

func BenchmarkMemCache_Set(b *testing.B) {
	cache := NewMemCache(testLogger())
	entry, _ := NewEntry(DatasetAll, createTestThreads(100), 100, time.Now(), time.Now().Add(time.Hour))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(ctx, fmt.Sprintf("dataset-%d", i%100), entry)
	}
}

func BenchmarkMemCache_Get(b *testing.B) {
	cache := NewMemCache(testLogger())
	entry, _ := NewEntry(DatasetAll, createTestThreads(100), 100, time.Now(), time.Now().Add(time.Hour))
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		cache.Set(ctx, fmt.Sprintf("dataset-%d", i), entry)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(ctx, fmt.Sprintf("dataset-%d", i%100))
	}
}
