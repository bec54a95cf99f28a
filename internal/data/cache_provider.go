package data

import (
	"context"
	"fmt"
	"log/slog"
	"threadgems/internal/config"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=cache_provider.go -destination=../mocks/cache.go -package=mocks

type CacheProvider interface {
	Get(ctx context.Context, name string) (CachedData, bool)
	ListAll(ctx context.Context) []string
	Set(ctx context.Context, name string, data CachedData)
	Delete(ctx context.Context, name string)
	Size(ctx context.Context) int
}

// NewCacheProvider builds the cache selected by cfg.Cache.Type. client is only
// used by the redis and hybrid caches.
func NewCacheProvider(cfg *config.Config, client *redis.Client, logger *slog.Logger) (CacheProvider, error) {
	switch cfg.Cache.Type {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis cache requires a redis client")
		}
		return NewRedisCache(client, logger), nil
	case "hybrid":
		if client == nil {
			return nil, fmt.Errorf("hybrid cache requires a redis client")
		}
		return NewHybridCache(NewMemCache(logger), NewRedisCache(client, logger), logger), nil
	case "memory", "":
		return NewMemCache(logger), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Cache.Type)
	}
}
