// Package cache is a small JSON key/value cache port with a Redis backend.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values. A miss is (false, nil); errors are
// transport failures callers may treat as misses.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// Incr atomically adds one to an integer key and returns the new value.
	// The stored value reads back through GetJSON as a number.
	Incr(ctx context.Context, key string) (int64, error)
}

var _ Cache = (*RedisCache)(nil)
