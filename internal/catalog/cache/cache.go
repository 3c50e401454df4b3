// Package cache layers a Redis read-through cache over a catalog store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"axisd/internal/catalog"
)

const keyPrefix = "axisd:coordinate:"

// CachedStore is a catalog.Store that serves Get from Redis when possible.
// Cache failures degrade to the underlying store; they are logged, never
// returned.
type CachedStore struct {
	inner  catalog.Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(inner catalog.Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *CachedStore) Save(ctx context.Context, record catalog.Record) (catalog.Record, error) {
	saved, err := c.inner.Save(ctx, record)
	if err != nil {
		return catalog.Record{}, err
	}
	c.set(ctx, saved)
	return saved, nil
}

func (c *CachedStore) Get(ctx context.Context, hash string) (*catalog.Record, error) {
	payload, err := c.client.Get(ctx, keyPrefix+hash).Bytes()
	if err == nil {
		var record catalog.Record
		if err := json.Unmarshal(payload, &record); err == nil {
			return &record, nil
		}
		c.logger.Warn("corrupt cache entry, falling through", "hash", hash)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("cache read failed", "hash", hash, "error", err)
	}

	record, err := c.inner.Get(ctx, hash)
	if err != nil {
		return nil, err
	}
	c.set(ctx, *record)
	return record, nil
}

func (c *CachedStore) List(ctx context.Context, limit, offset int) ([]catalog.Record, error) {
	return c.inner.List(ctx, limit, offset)
}

func (c *CachedStore) Delete(ctx context.Context, hash string) error {
	if err := c.inner.Delete(ctx, hash); err != nil {
		return err
	}
	if err := c.client.Del(ctx, keyPrefix+hash).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", "hash", hash, "error", err)
	}
	return nil
}

func (c *CachedStore) Count(ctx context.Context) (int, error) {
	return c.inner.Count(ctx)
}

func (c *CachedStore) set(ctx context.Context, record catalog.Record) {
	payload, err := json.Marshal(record)
	if err != nil {
		c.logger.Warn("cache marshal failed", "hash", record.Hash, "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+record.Hash, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "hash", record.Hash, "error", err)
	}
}
