package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/strata/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "strata:field:"

// FieldCache implements ports.FieldCache using Redis.
// Fields are stored as JSON documents under prefix+key.
type FieldCache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*FieldCache)

// WithTTL sets the expiration for cached fields. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *FieldCache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached fields.
func WithPrefix(prefix string) Option {
	return func(c *FieldCache) {
		c.prefix = prefix
	}
}

// New creates a Redis field cache connected to address.
func New(address, password string, db int, opts ...Option) *FieldCache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis field cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *FieldCache {
	c := &FieldCache{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *FieldCache) key(k string) string {
	return c.prefix + k
}

// Put stores the field.
func (c *FieldCache) Put(ctx context.Context, key string, field *domain.Field) error {
	data, err := json.Marshal(field)
	if err != nil {
		return fmt.Errorf("failed to marshal field: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves the field.
func (c *FieldCache) Get(ctx context.Context, key string) (*domain.Field, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var field domain.Field
	if err := json.Unmarshal(val, &field); err != nil {
		return nil, fmt.Errorf("failed to unmarshal field: %w", err)
	}
	return &field, nil
}

// Delete removes the field.
func (c *FieldCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Ping checks connectivity.
func (c *FieldCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Client exposes the underlying client so a Locker can share the connection.
func (c *FieldCache) Client() *backend.Client {
	return c.client
}

// Close closes the redis client.
func (c *FieldCache) Close() error {
	return c.client.Close()
}
