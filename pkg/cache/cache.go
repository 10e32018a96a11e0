// Package cache provides result caching for the calculation pipeline.
//
// A calculation is a pure function of the network, the catalog and the
// options, so its result can be cached under a content hash of those three
// inputs. The package ships several backends behind one interface:
//
//   - FileCache: file-based cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so CLI, API and tests agree on the layout,
// and a ScopedKeyer can prefix keys for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// TTLs for cached data. Calculation results only go stale when their inputs
// change - and changed inputs produce a different key - so the TTL mainly
// bounds disk usage for abandoned networks.
const (
	// TTLResult is how long solved path sets stay cached.
	TTLResult = 7 * 24 * time.Hour

	// TTLNetwork is how long serialized network snapshots stay cached.
	TTLNetwork = 30 * 24 * time.Hour
)

// Cache is a byte-oriented cache with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}
