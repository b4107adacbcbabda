package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rooted/backend/internal/domain"
)

// RedisCache implements domain.CacheRepository on top of Redis.
// Values are stored as JSON.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a cache from a redis:// URL
func NewRedisCache(redisURL, prefix string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return NewRedisCacheFromClient(redis.NewClient(opts), prefix), nil
}

// NewRedisCacheFromClient wraps an existing client
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Ping tests the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping failed: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Get retrieves and JSON-decodes a value
func (c *RedisCache) Get(ctx context.Context, key string) (interface{}, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("decoding cached value: %w", err)
	}
	return value, nil
}

// Set JSON-encodes and stores a value with TTL
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Delete removes a key
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Exists checks whether a key is present
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return n > 0, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
