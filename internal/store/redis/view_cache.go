package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/learntube/internal/store"
)

// DefaultViewTTL is the default TTL for cached catalog views
const DefaultViewTTL = time.Minute

// ViewCache keeps rendered catalog views keyed by a filter fingerprint.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache creates a view cache. A ttl <= 0 uses DefaultViewTTL.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Put stores a rendered view
func (c *ViewCache) Put(ctx context.Context, fingerprint string, view []byte) error {
	if err := c.client.Set(ctx, store.ViewKey(fingerprint), view, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache view: %w", err)
	}
	return nil
}

// Get returns a cached view, or nil on a miss
func (c *ViewCache) Get(ctx context.Context, fingerprint string) ([]byte, error) {
	data, err := c.client.Get(ctx, store.ViewKey(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached view: %w", err)
	}
	return data, nil
}

// Flush removes every cached view
func (c *ViewCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, store.KeyPrefixView+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete view key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush views: %w", err)
	}
	return nil
}
