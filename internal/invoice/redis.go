package invoice

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps rendered invoices in Redis for TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache returns a cache backed by client. A zero ttl keeps entries
// until evicted.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, pdf []byte) error {
	if err := c.client.Set(ctx, key, pdf, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}
