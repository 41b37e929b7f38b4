package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"eventcatalog/internal/domain"
)

const keyPrefix = "event:slug:"

// DefaultTTL is used when NewEventCache is given a non-positive ttl.
const DefaultTTL = 5 * time.Minute

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, addr, password string, db int, logger *slog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("redis client connected", "addr", addr)
	return rdb, nil
}

// kv is the subset of redis.Cmdable used by the cache.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type eventCache struct {
	rdb kv
	ttl time.Duration
}

// NewEventCache returns a domain.EventCache storing events as JSON under event:slug:<slug>.
func NewEventCache(rdb redis.Cmdable, ttl time.Duration) domain.EventCache {
	return newEventCache(rdb, ttl)
}

func newEventCache(rdb kv, ttl time.Duration) *eventCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &eventCache{rdb: rdb, ttl: ttl}
}

// Key returns the cache key for an event slug.
func Key(slug string) string {
	return keyPrefix + slug
}

func (c *eventCache) Get(ctx context.Context, slug string) (*domain.Event, error) {
	raw, err := c.rdb.Get(ctx, Key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var e domain.Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decode cached event: %w", err)
	}
	return &e, nil
}

func (c *eventCache) Set(ctx context.Context, e *domain.Event) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(e.Slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *eventCache) Invalidate(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		keys = append(keys, Key(s))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
