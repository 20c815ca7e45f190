// Package cache holds the Redis-backed like-count cache. The cache is an
// optional collaborator: a nil *LikeCountCache is a safe no-op and every
// cache failure degrades to a store read.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type LikeCountCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewLikeCountCache(url string, ttl time.Duration) (*LikeCountCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LikeCountCache{Client: redis.NewClient(opt), TTL: ttl}, nil
}

func key(mediaID int64) string {
	return "social:likes:" + strconv.FormatInt(mediaID, 10)
}

// Get returns the cached count for a media item, if present.
func (c *LikeCountCache) Get(ctx context.Context, mediaID int64) (int64, bool) {
	if c == nil || c.Client == nil {
		return 0, false
	}
	val, err := c.Client.Get(ctx, key(mediaID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Set stores the count for a media item.
func (c *LikeCountCache) Set(ctx context.Context, mediaID, count int64) {
	if c == nil || c.Client == nil {
		return
	}
	_ = c.Client.Set(ctx, key(mediaID), strconv.FormatInt(count, 10), c.TTL).Err()
}

// Invalidate drops the cached count after a like or unlike.
func (c *LikeCountCache) Invalidate(ctx context.Context, mediaID int64) {
	if c == nil || c.Client == nil {
		return
	}
	_ = c.Client.Del(ctx, key(mediaID)).Err()
}
