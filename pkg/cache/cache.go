// Package cache stores pipeline results between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (API servers, CI runners)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing (--no-cache)
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect a
// result, so a changed table or a changed threshold never hits a stale entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.EdgesKey(tableHash, cache.EdgesKeyOpts{SoftFloor: 0.5, TopN: 1})
//
// [ScopedKeyer] prefixes every key, which lets several deployments share one
// Redis database.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	EdgesTTL  = 7 * 24 * time.Hour
	RenderTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiry.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero or less stores the entry without
// expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
