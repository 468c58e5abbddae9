package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Through wraps a computation with read-through caching. On a hit the
// cached value is deserialized and tagged SourceCache; on a miss compute
// runs and its result is stored best-effort and tagged SourceDB. A nil or
// failing cache degrades to always-miss and never fails the request.
func Through[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, Source, error) {
	if c != nil {
		if raw, err := c.Get(ctx, key); err == nil {
			var cached T
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, SourceCache, nil
			}
			// Corrupt entry: fall through and overwrite it.
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, SourceDB, err
	}

	if c != nil {
		if raw, err := json.Marshal(value); err == nil {
			_ = c.Set(ctx, key, string(raw), ttl)
		}
	}
	return value, SourceDB, nil
}
