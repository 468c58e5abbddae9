package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores serialized metric payloads in Redis with per-key TTLs.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache creates a RedisCache and pings the server to make sure it
// is reachable.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

// Get returns the value stored under key, or ErrMiss.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

// Set stores value under key with the given TTL. Writes are last-writer-wins;
// concurrent population of the same key is acceptable.
func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Healthy pings the server.
func (r *RedisCache) Healthy(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close shuts down the client.
func (r *RedisCache) Close() error {
	return r.rdb.Close()
}
