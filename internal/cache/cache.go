// Package cache keeps per-theme settings snapshots in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultOperationTimeout = 2 * time.Second

// ErrMiss is returned when a key is absent or the cache is disabled.
var ErrMiss = errors.New("cache miss")

type Cache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// New connects to Redis. A disabled cache is returned when enable is false.
func New(addr string, enable bool, ttl time.Duration) (*Cache, error) {
	if !enable {
		return &Cache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return NewWithClient(client, ttl), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, enabled: client != nil, ttl: ttl}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

func (c *Cache) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultOperationTimeout)
}

func settingsKey(themeKey string) string {
	return "theme:settings:" + themeKey
}

// Settings returns the cached raw settings of a theme.
func (c *Cache) Settings(ctx context.Context, themeKey string) (map[string]string, error) {
	if !c.Enabled() {
		return nil, ErrMiss
	}
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	val, err := c.client.Get(ctx, settingsKey(themeKey)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, fmt.Errorf("decode cached settings: %w", err)
	}
	return out, nil
}

// StoreSettings caches the raw settings of a theme for the configured TTL.
func (c *Cache) StoreSettings(ctx context.Context, themeKey string, values map[string]string) error {
	if !c.Enabled() {
		return nil
	}
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, settingsKey(themeKey), data, c.ttl).Err()
}

// InvalidateSettings drops the cached settings of a theme.
func (c *Cache) InvalidateSettings(ctx context.Context, themeKey string) error {
	if !c.Enabled() {
		return nil
	}
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.client.Del(ctx, settingsKey(themeKey)).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
