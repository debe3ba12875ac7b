package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type RedisRenderCache struct {
	client *redis.Client
}

func NewRedisRenderCache(addr string, password string, db int) *RedisRenderCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisRenderCache{client: client}
}

func (c *RedisRenderCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisRenderCache) Close() error {
	return c.client.Close()
}

func (c *RedisRenderCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisRenderCache) Set(ctx context.Context, key string, html string, ttl time.Duration) error {
	if html == "" {
		return nil
	}
	return c.client.Set(ctx, key, html, ttl).Err()
}
