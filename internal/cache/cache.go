package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client for hash-shaped session data. Reads fail safe by
// behaving like a miss; writes report errors since a lost write loses a login.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("redis client not configured")
	}
	return c.client.Ping(ctx).Err()
}

// HGetAll returns every field of key, or an empty map if missing or redis unavailable.
func (c *Client) HGetAll(ctx context.Context, key string) map[string]string {
	if c == nil || c.client == nil {
		return map[string]string{}
	}
	res, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		// fail safe: behave like cache miss
		return map[string]string{}
	}
	return res
}

// HSet stores fields on key and refreshes its TTL.
func (c *Client) HSet(ctx context.Context, key string, fields map[string]string, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, values)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

// HDel removes fields from key.
func (c *Client) HDel(ctx context.Context, key string, fields ...string) error {
	if c == nil || c.client == nil || len(fields) == 0 {
		return nil
	}
	if err := c.client.HDel(ctx, key, fields...).Err(); err != nil {
		return fmt.Errorf("redis hdel %s: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
