package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/shared/constants"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

const (
	unreadKeyPrefix = constants.RedisKeyUnreadIssues + ":"
	// DefaultUnreadTTL bounds how stale a count can get if an invalidation is lost.
	DefaultUnreadTTL = 5 * time.Minute
	scanBatch        = 100
)

var (
	_ issue.UnreadCache = (*RedisUnreadCache)(nil)
	_ issue.UnreadCache = NoopUnreadCache{}
)

// RedisUnreadCache stores unread-issue counts under tracker:unread:{project}:{user}.
// Redis errors are logged and treated as misses.
type RedisUnreadCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisUnreadCache(client *redis.Client, ttl time.Duration, log logger.Interface) *RedisUnreadCache {
	if ttl <= 0 {
		ttl = DefaultUnreadTTL
	}
	return &RedisUnreadCache{
		client: client,
		ttl:    ttl,
		logger: log.With("component", "cache.unread"),
	}
}

func unreadKey(projectID, userID uint) string {
	return fmt.Sprintf("%s%d:%d", unreadKeyPrefix, projectID, userID)
}

func (c *RedisUnreadCache) Get(ctx context.Context, projectID, userID uint) (int64, bool) {
	val, err := c.client.Get(ctx, unreadKey(projectID, userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("failed to read unread count", "project_id", projectID, "user_id", userID, "error", err)
		}
		return 0, false
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		c.logger.Warnw("corrupt unread count", "project_id", projectID, "user_id", userID, "value", val)
		return 0, false
	}
	return n, true
}

func (c *RedisUnreadCache) Set(ctx context.Context, projectID, userID uint, count int64) {
	if err := c.client.Set(ctx, unreadKey(projectID, userID), count, c.ttl).Err(); err != nil {
		c.logger.Warnw("failed to store unread count", "project_id", projectID, "user_id", userID, "error", err)
	}
}

func (c *RedisUnreadCache) InvalidateUser(ctx context.Context, projectID, userID uint) {
	if err := c.client.Del(ctx, unreadKey(projectID, userID)).Err(); err != nil {
		c.logger.Warnw("failed to invalidate unread count", "project_id", projectID, "user_id", userID, "error", err)
	}
}

func (c *RedisUnreadCache) InvalidateProject(ctx context.Context, projectID uint) {
	pattern := fmt.Sprintf("%s%d:*", unreadKeyPrefix, projectID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			c.logger.Warnw("failed to scan unread counts", "project_id", projectID, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warnw("failed to invalidate unread counts", "project_id", projectID, "error", err)
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

// NoopUnreadCache is used when Redis is disabled; every lookup misses.
type NoopUnreadCache struct{}

func (NoopUnreadCache) Get(context.Context, uint, uint) (int64, bool) { return 0, false }
func (NoopUnreadCache) Set(context.Context, uint, uint, int64)        {}
func (NoopUnreadCache) InvalidateProject(context.Context, uint)       {}
func (NoopUnreadCache) InvalidateUser(context.Context, uint, uint)    {}
