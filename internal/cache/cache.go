// Package cache provides the process-wide product cache. Entries expire on
// an absolute deadline or when the sliding window elapses without a hit.
// The cache performs no coordination across concurrent misses: two callers
// racing on the same miss will both read the store and both write the cache,
// last write wins.
package cache

import (
	"context"
	"time"
)

type Store interface {
	// Get returns the cached payload for key. Expired entries are reported
	// as a miss whether or not they have been physically purged.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous entry and
	// resetting both expiration timers. A non-positive TTL disables the
	// corresponding timer.
	Set(ctx context.Context, key string, value []byte, absoluteTTL, slidingTTL time.Duration) error

	// Invalidate removes key. Removing an absent key is not an error.
	Invalidate(ctx context.Context, key string) error
}
