package data

import (
	"time"
)

// Dataset names served by the feed API.
const (
	DatasetAll    = "all"
	DatasetText   = "text"
	DatasetImage  = "image"
	DatasetRecent = "recent"
	KeyManifest   = "manifest"
)

const ManifestVersion = "1.0.0"

// CachedData is a single cache entry holding a pre-encoded JSON payload.
type CachedData struct {
	Name      string    `json:"name"`
	JSONBytes []byte    `json:"json_bytes"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry has a deadline that has passed.
func (c CachedData) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
