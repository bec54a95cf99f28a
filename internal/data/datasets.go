package data

import (
	"context"
	"encoding/json"
	"fmt"
	"threadgems/internal/models"
	"time"
)

// NewEntry encodes v as a cache entry that expires at expiresAt.
func NewEntry(name string, v any, count int, now, expiresAt time.Time) (CachedData, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return CachedData{}, fmt.Errorf("failed to encode %s: %w", name, err)
	}

	return CachedData{
		Name:      name,
		JSONBytes: payload,
		Count:     count,
		Timestamp: now,
		ExpiresAt: expiresAt,
	}, nil
}

// ReadThreads decodes a dataset from the cache.
func ReadThreads(ctx context.Context, cache CacheProvider, name string) ([]models.Thread, bool, error) {
	entry, ok := cache.Get(ctx, name)
	if !ok {
		return nil, false, nil
	}

	var threads []models.Thread
	if err := json.Unmarshal(entry.JSONBytes, &threads); err != nil {
		return nil, true, fmt.Errorf("failed to decode dataset %s: %w", name, err)
	}
	return threads, true, nil
}

func ReadManifest(ctx context.Context, cache CacheProvider) (*models.Manifest, bool, error) {
	entry, ok := cache.Get(ctx, KeyManifest)
	if !ok {
		return nil, false, nil
	}

	var manifest models.Manifest
	if err := json.Unmarshal(entry.JSONBytes, &manifest); err != nil {
		return nil, true, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &manifest, true, nil
}

// IsDataset reports whether name is one of the published datasets.
func IsDataset(name string) bool {
	switch name {
	case DatasetAll, DatasetText, DatasetImage, DatasetRecent:
		return true
	default:
		return false
	}
}
