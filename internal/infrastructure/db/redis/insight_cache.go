package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultInsightTTL = time.Hour

// InsightCache stores generated insight narratives.
// Key format: insights:<sha256 of the prompt>
type InsightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates an InsightCache wrapping the given Redis client.
func NewInsightCache(client *redis.Client, ttl time.Duration) *InsightCache {
	if ttl <= 0 {
		ttl = defaultInsightTTL
	}
	return &InsightCache{client: client, ttl: ttl}
}

// Get reports ok=false on a cache miss.
func (c *InsightCache) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("insight cache get: %w", err)
	}
	return text, true, nil
}

func (c *InsightCache) Set(ctx context.Context, key, narrative string) error {
	if err := c.client.Set(ctx, key, narrative, c.ttl).Err(); err != nil {
		return fmt.Errorf("insight cache set: %w", err)
	}
	return nil
}
