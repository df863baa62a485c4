package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pizza-nz/ordering-service/internal/config"
)

// ErrCacheMiss is returned by GetCache when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Client wraps the redis connection used for pub/sub notification channels
// and read-heavy aggregate caching.
type Client struct {
	rdb *redis.Client
}

// Initialize connects to redis and verifies the connection.
func Initialize(cfg config.Redis) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Publish sends a message to a channel. Delivery is at-most-once; absent
// subscribers are not an error.
func (c *Client) Publish(ctx context.Context, channel, message string) error {
	if err := c.rdb.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

// SetCache stores a JSON-encoded value under key with a TTL.
func (c *Client) SetCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// GetCache loads a JSON-encoded value into dest. Returns ErrCacheMiss when
// the key is not present.
func (c *Client) GetCache(ctx context.Context, key string, dest interface{}) error {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to get cache: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}
