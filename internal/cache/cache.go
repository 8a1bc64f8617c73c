// Package cache provides a small read-through JSON cache on Redis for
// the template gallery endpoints (category list, stats summary).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys.
const (
	KeyTemplateCategories = "templates:categories"
	KeyTemplateStats      = "templates:stats"
)

// DefaultTTL bounds staleness of cached gallery aggregates.
const DefaultTTL = 5 * time.Minute

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", slog.String("addr", fmt.Sprintf("%s:%s", host, port)))
	return client, nil
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Cache is safe to use as a nil pointer: every method degrades to a
// miss / no-op so the service runs without Redis.
type Cache struct {
	client *redis.Client
}

// GetJSON reports whether key was present and unmarshaled into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Invalidate drops keys after template mutations.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache invalidate failed", slog.String("err", err.Error()))
	}
}
