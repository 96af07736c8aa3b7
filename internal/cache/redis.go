package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"constru_backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when the key is absent or caching is disabled.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a thin JSON cache over redis. A nil Cache (or nil client) is
// valid and behaves as a permanent miss, so callers never branch on
// whether caching is configured.
type Cache struct {
	client *redis.Client
}

// New connects to redis when enabled in config, otherwise returns a
// disabled cache.
func New(cfg *config.Config) *Cache {
	if !cfg.Redis.Enabled {
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return &Cache{client: client}
}

// Ping verifies connectivity. Disabled caches always succeed.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// GetJSON unmarshals the cached value into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON stores value under key for ttl. Errors are returned but callers
// treat the cache as advisory.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// Delete removes keys, ignoring missing ones.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
