package data

import (
	"context"
	"log/slog"
	"sync"
	"threadgems/internal/metrics"
	"time"
)

type MemCache struct {
	cache  map[string]CachedData
	mutex  sync.RWMutex
	logger *slog.Logger
	clock  func() time.Time
}

func NewMemCache(logger *slog.Logger) *MemCache {
	return &MemCache{
		cache:  make(map[string]CachedData),
		logger: logger,
		clock:  time.Now,
	}
}

// WithClock sets the time expiry is judged against.
func (d *MemCache) WithClock(clock func() time.Time) *MemCache {
	d.clock = clock
	return d
}

// Get returns a cached entry. Expired entries are dropped and reported as a miss.
func (d *MemCache) Get(_ context.Context, name string) (CachedData, bool) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeMemory, metrics.CacheOperationTypeGet).Observe(time.Since(start).Seconds())
	}()

	d.mutex.RLock()
	cached, exists := d.cache[name]
	d.mutex.RUnlock()

	if !exists {
		metrics.CacheMisses.WithLabelValues(metrics.CacheTypeMemory).Inc()
		return CachedData{}, false
	}

	now := d.clock()
	if cached.Expired(now) {
		d.mutex.Lock()
		if current, ok := d.cache[name]; ok && current.Expired(now) {
			delete(d.cache, name)
		}
		size := len(d.cache)
		d.mutex.Unlock()
		metrics.CacheItems.WithLabelValues(metrics.CacheTypeMemory).Set(float64(size))
		metrics.CacheMisses.WithLabelValues(metrics.CacheTypeMemory).Inc()
		return CachedData{}, false
	}

	metrics.CacheHits.WithLabelValues(metrics.CacheTypeMemory).Inc()
	return cached, true
}

// ListAll returns the names of the cached entries.
func (d *MemCache) ListAll(_ context.Context) []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	keys := make([]string, 0, len(d.cache))
	for k := range d.cache {
		keys = append(keys, k)
	}

	return keys
}

func (d *MemCache) Set(_ context.Context, name string, data CachedData) {
	start := time.Now()

	data.Name = name
	if data.Timestamp.IsZero() {
		data.Timestamp = d.clock()
	}

	d.mutex.Lock()
	d.cache[name] = data
	size := len(d.cache)
	d.mutex.Unlock()

	metrics.CacheItems.WithLabelValues(metrics.CacheTypeMemory).Set(float64(size))
	metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeMemory, metrics.CacheOperationTypeSet).Observe(time.Since(start).Seconds())
}

func (d *MemCache) Delete(_ context.Context, name string) {
	d.mutex.Lock()
	delete(d.cache, name)
	size := len(d.cache)
	d.mutex.Unlock()

	metrics.CacheItems.WithLabelValues(metrics.CacheTypeMemory).Set(float64(size))
}

// Size returns the current number of elements in the cache
func (d *MemCache) Size(_ context.Context) int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return len(d.cache)
}
