package cache

import (
	"context"
	"time"
)

// Cache is the contract repositories use for cache-aside reads.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found = false on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; unknown keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
