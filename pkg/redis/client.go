package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trigg3rX/sybil-verifier/pkg/logging"
)

// ErrMissingURL is returned when no Redis URL is configured
var ErrMissingURL = errors.New("redis URL is not set")

// Client represents a Redis client
type Client struct {
	client *redis.Client
	logger logging.Logger
}

// NewClient creates a new Redis client from a redis:// or rediss:// URL and
// verifies the connection.
func NewClient(redisURL string, logger logging.Logger) (*Client, error) {
	if redisURL == "" {
		return nil, ErrMissingURL
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisClient := &Client{
		client: redis.NewClient(opt),
		logger: logger,
	}

	if err := redisClient.CheckConnection(); err != nil {
		_ = redisClient.client.Close()
		return nil, err
	}

	return redisClient, nil
}

// CheckConnection tests the Redis connection
func (c *Client) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.client.Ping(ctx).Result()
	if err != nil {
		c.logger.Errorf("Failed to connect to Redis: %v", err)
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c.logger.Info("Successfully connected to Redis")
	return nil
}

// HMGet returns the requested hash fields; missing fields come back as nil
func (c *Client) HMGet(ctx context.Context, key string, fields ...string) ([]interface{}, error) {
	return c.client.HMGet(ctx, key, fields...).Result()
}

// Del removes keys from Redis
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Eval executes a Lua script
func (c *Client) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	return c.client.Eval(ctx, script, keys, args...).Result()
}

// Client returns the underlying Redis client if direct access is needed
func (c *Client) Client() *redis.Client {
	return c.client
}

// Close closes the Redis client connection
func (c *Client) Close() error {
	return c.client.Close()
}
