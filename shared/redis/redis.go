// Package redis is the read cache in front of the listings that every visitor
// loads: category types and advertised products. A nil *Cache is valid and
// behaves as a cache that always misses.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"seller-marketplace/shared/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache keys.
const (
	CategoriesKey = "cache:categories"
	AdvertisedKey = "cache:products:advertised"
)

type Cache struct {
	client *redis.Client
}

// Connect returns a nil cache when caching is disabled.
func Connect(ctx context.Context, cfg *config.Config) (*Cache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return New(client), nil
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get decodes the cached JSON value into dest. A miss returns redis.Nil.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil {
		return redis.Nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Remember returns the cached value under key, or calls load and caches its
// result for ttl. Cache failures are logged and never returned; only load
// errors are.
func Remember[T any](ctx context.Context, c *Cache, log zerolog.Logger, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	err := c.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return value, nil
}

// Invalidate drops keys, logging failures.
func Invalidate(ctx context.Context, c *Cache, log zerolog.Logger, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}
