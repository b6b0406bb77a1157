// Package cache keeps resolved prison and location names in Redis so that
// repeated confirmation and history views avoid upstream calls.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/use-of-force/internal/config"
)

const keyPrefix = "uof:name:"

// NameCache is a read-through cache of display names keyed by kind and id.
type NameCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient creates a Redis client from the provided configuration.
// Returns nil if the URL is empty (cache disabled).
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.DialTimeout = cfg.DialTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// NewNameCache creates a cache on top of client. Entries expire after ttl.
func NewNameCache(client *redis.Client, ttl time.Duration) *NameCache {
	return &NameCache{client: client, ttl: ttl}
}

func key(kind, id string) string {
	return keyPrefix + kind + ":" + id
}

// Get returns the cached name. The bool is false on a miss.
func (c *NameCache) Get(ctx context.Context, kind, id string) (string, bool, error) {
	name, err := c.client.Get(ctx, key(kind, id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached %s name: %w", kind, err)
	}
	return name, true, nil
}

// GetMany returns cached names for ids; misses are absent from the result.
func (c *NameCache) GetMany(ctx context.Context, kind string, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(kind, id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get cached %s names: %w", kind, err)
	}
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[ids[i]] = s
		}
	}
	return out, nil
}

// Set stores a resolved name.
func (c *NameCache) Set(ctx context.Context, kind, id, name string) error {
	if err := c.client.Set(ctx, key(kind, id), name, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache %s name: %w", kind, err)
	}
	return nil
}

// SetMany stores several resolved names in one round trip.
func (c *NameCache) SetMany(ctx context.Context, kind string, names map[string]string) error {
	if len(names) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for id, name := range names {
		pipe.Set(ctx, key(kind, id), name, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache %s names: %w", kind, err)
	}
	return nil
}

// Health checks if the Redis connection is healthy.
func (c *NameCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
