// Package cache stores fetched contribution data and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory; used by the CLI
//   - [RedisCache]: a shared Redis instance; used by the HTTP server
//   - [NullCache]: stores nothing; used for --no-cache and in tests
//
// All backends implement [Cache]. Entries carry a TTL; a zero TTL never
// expires.
//
// # Keys
//
// A [Keyer] builds the keys so that the same inputs always map to the same
// entry. [DefaultKeyer] is the standard scheme and [ScopedKeyer] prefixes
// every key, which keeps results fetched with different tokens apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key for ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
