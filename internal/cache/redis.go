package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache adapts go-redis to the Cache capability. The client wraps a
// connection pool internally; no extra singleton guard is needed the way
// the teacher guards its Pinecone/Voyage clients, since redis.Client is
// already safe for concurrent use out of the box.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis instance described by url (a
// redis:// connection string, per REDIS_URL in spec §6).
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
