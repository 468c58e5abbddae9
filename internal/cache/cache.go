// Package cache provides the advisory read-through cache in front of the
// metric computers. The cache is never load-bearing: a disabled or
// unreachable cache behaves as always-miss and requests fall through to
// the store.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when no value is stored under the key.
var ErrMiss = errors.New("cache miss")

// Cache is the capability consumed by the read-through layer. Values are
// serialized strings; TTL expiry is the only invalidation.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Source tags where a response payload came from.
type Source string

const (
	// SourceCache marks a payload served from the cache.
	SourceCache Source = "cache"
	// SourceDB marks a payload computed from the snapshot store.
	SourceDB Source = "db"
)
