package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"threadgems/internal/metrics"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheClient is the subset of *redis.Client the cache relies on.
type RedisCacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
	Ping(ctx context.Context) *redis.StatusCmd
	PoolStats() *redis.PoolStats
	Close() error
}

type RedisCache struct {
	client RedisCacheClient
	logger *slog.Logger
}

func NewRedisCache(client RedisCacheClient, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
	}
}

// key generates a namespaced Redis key
func (r *RedisCache) key(name string) string {
	return fmt.Sprintf("cache:feed:%s", name)
}

// ClosePool closes the underlying client.
func (r *RedisCache) ClosePool() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, name string) (CachedData, bool) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeRedis, metrics.CacheOperationTypeGet).Observe(time.Since(start).Seconds())
	}()

	raw, err := r.client.Get(ctx, r.key(name)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("error executing redis GET", "key", name, "error", err)
		}
		metrics.CacheMisses.WithLabelValues(metrics.CacheTypeRedis).Inc()
		return CachedData{}, false
	}

	var cached CachedData
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		r.logger.Error("error unmarshalling redis response", "key", name, "error", err)
		metrics.CacheMisses.WithLabelValues(metrics.CacheTypeRedis).Inc()
		return CachedData{}, false
	}

	metrics.CacheHits.WithLabelValues(metrics.CacheTypeRedis).Inc()
	return cached, true
}

func (r *RedisCache) ListAll(ctx context.Context) []string {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeRedis, metrics.CacheOperationTypeListAll).Observe(time.Since(start).Seconds())
	}()

	keys, err := r.client.Keys(ctx, r.key("*")).Result()
	if err != nil {
		r.logger.Error("error executing redis KEYS", "error", err)
		return []string{}
	}

	prefixLen := len(r.key(""))
	result := make([]string, 0, len(keys))
	for _, key := range keys {
		if len(key) > prefixLen {
			result = append(result, key[prefixLen:])
		}
	}

	return result
}

// Set stores data with a TTL derived from ExpiresAt. Entries without a
// deadline never expire.
func (r *RedisCache) Set(ctx context.Context, name string, data CachedData) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeRedis, metrics.CacheOperationTypeSet).Observe(time.Since(start).Seconds())
	}()

	data.Name = name
	if data.Timestamp.IsZero() {
		data.Timestamp = start
	}

	var ttl time.Duration
	if !data.ExpiresAt.IsZero() {
		ttl = time.Until(data.ExpiresAt)
		if ttl <= 0 {
			r.logger.Warn("refusing to cache an already expired entry", "key", name)
			return
		}
	}

	payload, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("error marshalling cached data", "key", name, "error", err)
		return
	}

	if err := r.client.Set(ctx, r.key(name), payload, ttl).Err(); err != nil {
		r.logger.Error("error executing redis SET", "key", name, "error", err)
	}
}

func (r *RedisCache) Delete(ctx context.Context, name string) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeRedis, metrics.CacheOperationTypeDelete).Observe(time.Since(start).Seconds())
	}()

	if err := r.client.Del(ctx, r.key(name)).Err(); err != nil {
		r.logger.Error("error executing redis DEL", "key", name, "error", err)
	}
}

// Size returns the current number of elements in the cache
func (r *RedisCache) Size(ctx context.Context) int {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeRedis, metrics.CacheOperationTypeCountEntries).Observe(time.Since(start).Seconds())
	}()

	keys, err := r.client.Keys(ctx, r.key("*")).Result()
	if err != nil {
		r.logger.Error("error executing redis KEYS", "error", err)
		return 0
	}

	return len(keys)
}
