package data

import (
	"context"
	"log/slog"
)

func NewHybridCache(mem *MemCache, redis *RedisCache, logger *slog.Logger) *HybridCache {
	return &HybridCache{
		mem:    mem,
		redis:  redis,
		logger: logger,
	}
}

// HybridCache keeps a per-instance memory copy in front of the shared redis
// cache, so followers see datasets written by the leader.
type HybridCache struct {
	mem    *MemCache
	redis  *RedisCache
	logger *slog.Logger
}

// Get returns the memory copy when it is fresh and falls back to redis,
// repopulating memory on a redis hit.
func (h *HybridCache) Get(ctx context.Context, name string) (CachedData, bool) {
	if data, ok := h.mem.Get(ctx, name); ok {
		return data, true
	}

	data, ok := h.redis.Get(ctx, name)
	if !ok || data.Expired(h.mem.clock()) {
		return CachedData{}, false
	}

	h.mem.Set(ctx, name, data)
	return data, true
}

// ListAll merges the keys held in memory and in redis.
func (h *HybridCache) ListAll(ctx context.Context) []string {
	redisKeys := h.redis.ListAll(ctx)
	memKeys := h.mem.ListAll(ctx)

	if len(redisKeys) == 0 {
		return memKeys
	}

	if len(memKeys) == 0 {
		return redisKeys
	}

	resultKeys := make(map[string]bool, len(redisKeys)+len(memKeys))
	for _, key := range redisKeys {
		resultKeys[key] = true
	}
	for _, key := range memKeys {
		resultKeys[key] = true
	}

	result := make([]string, 0, len(resultKeys))
	for key := range resultKeys {
		result = append(result, key)
	}

	return result
}

func (h *HybridCache) Set(ctx context.Context, name string, data CachedData) {
	h.redis.Set(ctx, name, data)
	h.mem.Set(ctx, name, data)
}

func (h *HybridCache) Delete(ctx context.Context, name string) {
	h.mem.Delete(ctx, name)
	h.redis.Delete(ctx, name)
}

func (h *HybridCache) Size(ctx context.Context) int {
	return h.redis.Size(ctx)
}
