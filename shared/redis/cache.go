package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ViewCache is a generic JSON-backed Redis store for small per-session
// values. Bind it to a value type T; pass a zero ttl for keys that should
// not expire.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewViewCache[T any](client *goredis.Client, ttl time.Duration, logger *zap.Logger) *ViewCache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewCache[T]{client: client, ttl: ttl, logger: logger}
}

// Get retrieves and unmarshals a value from Redis.
// Returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("view cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return c.decode(key, data)
}

// Take reads and deletes key in one round trip (GETDEL), so a value is
// handed out at most once.
func (c *ViewCache[T]) Take(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.GetDel(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("view cache take failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return c.decode(key, data)
}

// Set marshals value and stores it under key. A failed write is logged, not
// returned: nothing stored here is authoritative.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("view cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("view cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *ViewCache[T]) decode(key string, data []byte) (*T, bool) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("view cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &v, true
}
