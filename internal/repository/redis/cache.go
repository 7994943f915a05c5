package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"toolrental-charges/internal/repository"
)

type Cache struct {
	client *goredis.Client
	prefix string
}

func NewCache(addr, prefix string) *Cache {
	rdb := goredis.NewClient(&goredis.Options{
		Addr: addr,
	})
	return NewCacheWithClient(rdb, prefix)
}

func NewCacheWithClient(client *goredis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", repository.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
