package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisUnreadCache_GetSet(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisUnreadCache(client, 0, logger.NewLogger())
	ctx := context.Background()

	_, ok := c.Get(ctx, 1, 2)
	assert.False(t, ok)

	c.Set(ctx, 1, 2, 7)
	n, ok := c.Get(ctx, 1, 2)
	require.True(t, ok)
	assert.Equal(t, int64(7), n)
	assert.True(t, mr.Exists("tracker:unread:1:2"))

	mr.FastForward(DefaultUnreadTTL + time.Second)
	_, ok = c.Get(ctx, 1, 2)
	assert.False(t, ok)
}

func TestRedisUnreadCache_Invalidate(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisUnreadCache(client, time.Minute, logger.NewLogger())
	ctx := context.Background()

	c.Set(ctx, 1, 2, 3)
	c.Set(ctx, 1, 3, 4)
	c.Set(ctx, 10, 2, 5)

	c.InvalidateUser(ctx, 1, 2)
	_, ok := c.Get(ctx, 1, 2)
	assert.False(t, ok)
	_, ok = c.Get(ctx, 1, 3)
	assert.True(t, ok)

	c.InvalidateProject(ctx, 1)
	_, ok = c.Get(ctx, 1, 3)
	assert.False(t, ok)
	// project 10 shares the "1" prefix but not the key segment
	assert.True(t, mr.Exists("tracker:unread:10:2"))
}

func TestRedisUnreadCache_BackendDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewRedisUnreadCache(client, time.Minute, logger.NewLogger())
	mr.Close()

	ctx := context.Background()
	c.Set(ctx, 1, 1, 1)
	_, ok := c.Get(ctx, 1, 1)
	assert.False(t, ok)
	c.InvalidateProject(ctx, 1)
}

func TestNoopUnreadCache(t *testing.T) {
	var c NoopUnreadCache
	c.Set(context.Background(), 1, 1, 5)
	_, ok := c.Get(context.Background(), 1, 1)
	assert.False(t, ok)
}
