package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value float64 `json:"value"`
}

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}

func (failingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("connection refused")
}

func TestThrough(t *testing.T) {
	ctx := context.Background()

	t.Run("miss computes and populates", func(t *testing.T) {
		c := NewMemoryCache()
		calls := 0
		compute := func(context.Context) (payload, error) {
			calls++
			return payload{Value: 42.5}, nil
		}

		got, src, err := Through(ctx, c, "k", time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, SourceDB, src)
		assert.Equal(t, 42.5, got.Value)
		assert.Equal(t, 1, calls)

		got, src, err = Through(ctx, c, "k", time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, SourceCache, src)
		assert.Equal(t, 42.5, got.Value)
		assert.Equal(t, 1, calls)
	})

	t.Run("nil cache always computes", func(t *testing.T) {
		calls := 0
		compute := func(context.Context) (payload, error) {
			calls++
			return payload{Value: 1}, nil
		}
		for i := 0; i < 2; i++ {
			_, src, err := Through[payload](ctx, nil, "k", time.Minute, compute)
			require.NoError(t, err)
			assert.Equal(t, SourceDB, src)
		}
		assert.Equal(t, 2, calls)
	})

	t.Run("failing cache degrades to compute", func(t *testing.T) {
		got, src, err := Through(ctx, failingCache{}, "k", time.Minute, func(context.Context) (payload, error) {
			return payload{Value: 7}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, SourceDB, src)
		assert.Equal(t, 7.0, got.Value)
	})

	t.Run("compute error is returned with zero value", func(t *testing.T) {
		c := NewMemoryCache()
		wantErr := errors.New("store down")
		got, src, err := Through(ctx, c, "k", time.Minute, func(context.Context) (payload, error) {
			return payload{}, wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, SourceDB, src)
		assert.Zero(t, got.Value)

		_, err = c.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrMiss, "failed computations must not be cached")
	})

	t.Run("corrupt entry is recomputed and overwritten", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.Set(ctx, "k", "{not json", time.Minute))

		got, src, err := Through(ctx, c, "k", time.Minute, func(context.Context) (payload, error) {
			return payload{Value: 3}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, SourceDB, src)
		assert.Equal(t, 3.0, got.Value)

		raw, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":3}`, raw)
	})
}

func TestMemoryCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", "v", 20*time.Millisecond))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	time.Sleep(30 * time.Millisecond)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = c.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrMiss)
}
