package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"

	"katalog/internal/models"
)

// DefaultRedisPrefix namespaces listing keys in Redis.
const DefaultRedisPrefix = "katalog:cache:"

// Redis is a Cache shared by every instance pointing at the same Redis database.
// Redis failures degrade to cache misses.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string

	hits   int64
	misses int64
}

// RedisOption customises a Redis cache.
type RedisOption func(*Redis)

// WithRedisTTL sets the expiry applied to every stored key.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(c *Redis) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix sets the key prefix. InvalidateAll only removes keys under it.
func WithPrefix(prefix string) RedisOption {
	return func(c *Redis) {
		c.prefix = prefix
	}
}

// NewRedis creates a Redis-backed cache.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	c := &Redis{
		client: client,
		ttl:    DefaultTTL,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Redis) Get(ctx context.Context, key string) (models.ProductPage, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis cache get %s failed: %v", key, err)
		}
		atomic.AddInt64(&c.misses, 1)
		return models.ProductPage{}, false
	}

	var page models.ProductPage
	if err := json.Unmarshal(val, &page); err != nil {
		atomic.AddInt64(&c.misses, 1)
		return models.ProductPage{}, false
	}
	atomic.AddInt64(&c.hits, 1)
	return page, true
}

func (c *Redis) Set(ctx context.Context, key string, page models.ProductPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in Redis: %w", key, err)
	}
	return nil
}

// InvalidateAll deletes every key under the cache prefix.
func (c *Redis) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// Stats reports hit/miss counters. Entries is not tracked for Redis.
func (c *Redis) Stats() Stats {
	return Stats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
	}
}
