package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const categoriesKey = "catalog:categories"

// Client is a read-through cache for the catalog category list. It is
// advisory only: a stale entry merely delays visibility of a new
// category and is never relied on for order correctness.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, ttl time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// GetCategories returns the cached category list, or (nil, nil) on a
// cache miss.
func (c *Client) GetCategories(ctx context.Context) ([]string, error) {
	val, err := c.rdb.Get(ctx, categoriesKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached categories: %w", err)
	}

	var categories []string
	if err := json.Unmarshal([]byte(val), &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached categories: %w", err)
	}
	return categories, nil
}

func (c *Client) SetCategories(ctx context.Context, categories []string) error {
	jsonData, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	return c.rdb.Set(ctx, categoriesKey, jsonData, c.ttl).Err()
}

// InvalidateCategories drops the cached list after a catalog write.
func (c *Client) InvalidateCategories(ctx context.Context) error {
	return c.rdb.Del(ctx, categoriesKey).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
