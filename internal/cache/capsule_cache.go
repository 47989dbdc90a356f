package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "Capsule/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPublic = "capsule:public:" // + sort (latest|trending)

// CapsuleCache caches the public capsule listings in Redis. The cached lists
// carry no per-user data; liked flags are layered on after the cache read.
type CapsuleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCapsuleCache returns a new CapsuleCache.
func NewCapsuleCache(rdb *redis.Client, ttl time.Duration) *CapsuleCache {
	return &CapsuleCache{rdb: rdb, ttl: ttl}
}

// GetPublic returns the cached public listing for sort, or nil on miss.
func (c *CapsuleCache) GetPublic(ctx context.Context, sort string) ([]dom.Capsule, error) {
	b, err := c.rdb.Get(ctx, keyPublic+sort).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Capsule
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetPublic stores the public listing for sort.
func (c *CapsuleCache) SetPublic(ctx context.Context, sort string, list []dom.Capsule) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPublic+sort, b, c.ttl).Err()
}

// Invalidate drops all public listings (cache invalidation on write).
func (c *CapsuleCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPublic+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
