package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"axisd/internal/platform/config"
	dErrors "axisd/pkg/domain-errors"
)

// Client is a go-redis client plus the health hook the transport layer
// polls. A nil *Client means the cache layer is disabled.
type Client struct {
	*redis.Client
}

// New connects to Redis from the provided configuration and verifies the
// connection. Returns (nil, nil) when no URL is configured.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeBadRequest, "invalid redis URL", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout+time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "redis unreachable", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection is usable, for the detailed health
// endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
