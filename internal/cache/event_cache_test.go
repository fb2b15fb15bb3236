package cache_test

import (
	"context"
	"testing"
	"time"

	"go-event-registry/internal/cache"
	"go-event-registry/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) cache.EventCache {
	t.Helper()
	mr := miniredis.RunT(t)
	t.Cleanup(func() { mr.Close() })
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewRedisEventCache(client, time.Minute)
}

func TestRedisEventCache(t *testing.T) {
	ctx := context.Background()

	event := &model.Event{
		ID:          1,
		Name:        "test",
		Description: "This is a test",
		Location:    "At my place",
		Date:        "Tomorrow",
		Owner:       "alice",
		Status:      model.EventStatusOpen,
	}

	t.Run("Success - set then get round trip", func(t *testing.T) {
		c := newTestCache(t)

		require.NoError(t, c.Set(ctx, event))

		cached, err := c.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, event.Name, cached.Name)
		assert.Equal(t, event.Status, cached.Status)
	})

	t.Run("Failed - miss for unknown id", func(t *testing.T) {
		c := newTestCache(t)

		_, err := c.Get(ctx, 42)

		require.Error(t, err)
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("Success - invalidate removes the entry", func(t *testing.T) {
		c := newTestCache(t)
		require.NoError(t, c.Set(ctx, event))

		require.NoError(t, c.Invalidate(ctx, 1))

		_, err := c.Get(ctx, 1)
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})
}

func TestNoopEventCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewNoopEventCache()

	require.NoError(t, c.Set(ctx, &model.Event{ID: 1}))
	_, err := c.Get(ctx, 1)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	require.NoError(t, c.Invalidate(ctx, 1))
}
