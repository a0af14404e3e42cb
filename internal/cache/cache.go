// Package cache provides a Redis-backed read-through cache for destination
// search responses. It is ephemeral acceleration for the travel provider,
// not storage: itineraries never pass through here.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travex/travex/internal/amadeus"
)

const defaultTTL = time.Hour

// SearchCache wraps a Redis client and provides typed get/set/delete for
// destination search results keyed by keyword.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs a SearchCache with a 1-hour TTL.
func New(client *redis.Client) *SearchCache {
	return &SearchCache{client: client, ttl: defaultTTL}
}

// key returns the Redis key for the given search keyword.
func key(keyword string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(keyword))
}

// Get retrieves a cached search result.
// Returns nil, nil on a cache miss (not an error).
func (c *SearchCache) Get(ctx context.Context, keyword string) (*amadeus.DestinationResult, error) {
	val, err := c.client.Get(ctx, key(keyword)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for keyword %s: %w", keyword, err)
	}

	var result amadeus.DestinationResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, fmt.Errorf("unmarshaling cached result for keyword %s: %w", keyword, err)
	}

	return &result, nil
}

// Set stores a search result with the configured TTL.
func (c *SearchCache) Set(ctx context.Context, keyword string, result *amadeus.DestinationResult) error {
	if result == nil {
		return nil
	}

	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling search result for keyword %s: %w", keyword, err)
	}

	if err := c.client.Set(ctx, key(keyword), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for keyword %s: %w", keyword, err)
	}

	return nil
}

// Delete removes the cached entry for the given keyword.
func (c *SearchCache) Delete(ctx context.Context, keyword string) error {
	if err := c.client.Del(ctx, key(keyword)).Err(); err != nil {
		return fmt.Errorf("cache delete for keyword %s: %w", keyword, err)
	}
	return nil
}

// Noop is the cache used when no Redis URL is configured: always a miss,
// never an error, so the search path behaves identically either way.
type Noop struct{}

// Get always reports a miss.
func (Noop) Get(ctx context.Context, keyword string) (*amadeus.DestinationResult, error) {
	return nil, nil
}

// Set discards the result.
func (Noop) Set(ctx context.Context, keyword string, result *amadeus.DestinationResult) error {
	return nil
}

// Delete does nothing.
func (Noop) Delete(ctx context.Context, keyword string) error {
	return nil
}
