// Package routecache stores resolved routes in Redis.
package routecache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexivanou/geofare/internal/model"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "geofare:route:"

// Cache keeps route info keyed by the ordered city pair
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

// New creates a route cache
func New(redis *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: redis, ttl: ttl}
}

// NewClient opens a Redis client for addr
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Get returns the cached route, or nil when absent
func (c *Cache) Get(ctx context.Context, originID, destinationID string) (*model.RouteInfo, error) {
	val, err := c.redis.Get(ctx, routeKey(originID, destinationID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read route: %w", err)
	}

	var info model.RouteInfo
	if err := json.Unmarshal(val, &info); err != nil {
		return nil, fmt.Errorf("failed to decode route: %w", err)
	}
	return &info, nil
}

// Set stores a route with the configured TTL
func (c *Cache) Set(ctx context.Context, originID, destinationID string, info *model.RouteInfo) error {
	val, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode route: %w", err)
	}
	return c.redis.Set(ctx, routeKey(originID, destinationID), val, c.ttl).Err()
}

func routeKey(originID, destinationID string) string {
	return keyPrefix + strings.ToLower(originID) + ":" + strings.ToLower(destinationID)
}
