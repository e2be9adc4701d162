// Package cache provides a Redis client wrapper used to memoize extracted
// study-material content between requests.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTTL bounds how long extracted note content stays cached; the
// library fingerprint in the key already invalidates on file changes.
const defaultTTL = 24 * time.Hour

// Cache wraps a Redis client.
type Cache struct {
	Client *redis.Client
	ttl    time.Duration
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// New creates a new cache client.
func New(ctx context.Context, url string) (*Cache, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	return &Cache{Client: client, ttl: defaultTTL}, nil
}

// GetText returns the cached text for key. The second result is false on a
// miss; transport errors also read as misses so callers re-extract.
func (c *Cache) GetText(ctx context.Context, key string) (string, bool) {
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetText stores text under key with the cache TTL.
func (c *Cache) SetText(ctx context.Context, key, text string) error {
	return c.Client.Set(ctx, key, text, c.ttl).Err()
}

// Close shuts down the cache client.
func (c *Cache) Close() error {
	return c.Client.Close()
}

// HealthCheck verifies the cache connection is alive.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
