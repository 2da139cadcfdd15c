// Package cache provides byte-oriented caching for datasets and rendered
// chart artifacts.
//
// # Backends
//
//   - [FileCache]: raw entries stored under a directory, one subdirectory per key kind; used by the CLI.
//   - [RedisCache]: entries stored in Redis; shared by preview server instances.
//   - [NullCache]: never stores anything; used with --no-cache and in tests.
//
// # Keys
//
// A [Keyer] derives cache keys. [DefaultKeyer] produces readable dataset keys
// and hashed artifact keys; [ScopedKeyer] prefixes every key, which isolates
// tenants sharing one Redis instance.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLDataset bounds how long a fetched remote dataset is reused.
	TTLDataset = 24 * time.Hour
	// TTLArtifact bounds how long a rendered artifact is reused.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. The boolean is false on a miss,
	// including expired entries.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
