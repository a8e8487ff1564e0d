package grid

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/aretw0/strata/pkg/source"
)

// Request identifies a sampled field by content.
type Request struct {
	Sources   []domain.SourceSpec `json:"sources"`
	Grid      domain.GridSpec     `json:"grid"`
	Component domain.Component    `json:"component"`
}

// Key returns a stable content hash of the request.
func (r Request) Key() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode field request: %w", err)
	}
	sum := sha256.Sum256(data)
	return "field:" + hex.EncodeToString(sum[:]), nil
}

// CachedSampler serves fields from a cache and samples only on a miss.
type CachedSampler struct {
	sampler *Sampler
	cache   ports.FieldCache
	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// CachedOption configures a CachedSampler.
type CachedOption func(*CachedSampler)

// DefaultLockTTL bounds how long a crashed holder can block other replicas.
const DefaultLockTTL = 30 * time.Second

// WithLocker serialises computation of the same key across replicas.
// A non-positive ttl keeps DefaultLockTTL.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) CachedOption {
	return func(c *CachedSampler) {
		c.locker = locker
		if ttl > 0 {
			c.lockTTL = ttl
		}
	}
}

// WithCacheLogger sets the logger for cache diagnostics.
func WithCacheLogger(logger *slog.Logger) CachedOption {
	return func(c *CachedSampler) {
		c.logger = logger
	}
}

// WithCacheMetrics records hits and misses.
func WithCacheMetrics(m *observability.Metrics) CachedOption {
	return func(c *CachedSampler) {
		c.metrics = m
	}
}

// NewCachedSampler wraps sampler with cache.
func NewCachedSampler(sampler *Sampler, cache ports.FieldCache, opts ...CachedOption) *CachedSampler {
	c := &CachedSampler{
		sampler: sampler,
		cache:   cache,
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Field returns the requested field, sampling and storing it on a miss.
// Cache failures are logged and never fail the request.
func (c *CachedSampler) Field(ctx context.Context, req Request) (*domain.Field, error) {
	if err := req.Grid.Validate(); err != nil {
		return nil, err
	}
	key, err := req.Key()
	if err != nil {
		return nil, err
	}

	if f, ok := c.lookup(ctx, key); ok {
		return f, nil
	}

	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, key, c.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock %s: %w", key, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				c.logger.Warn("failed to release field lock", "key", key, "error", err)
			}
		}()

		// Another replica may have filled the cache while we waited.
		if f, ok := c.lookup(ctx, key); ok {
			return f, nil
		}
	}

	e, err := source.FromSpecs(req.Sources)
	if err != nil {
		return nil, err
	}
	f, err := c.sampler.Sample(ctx, e, req.Grid, req.Component)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, f); err != nil {
		c.logger.Warn("failed to store field", "key", key, "error", err)
	}
	return f, nil
}

func (c *CachedSampler) lookup(ctx context.Context, key string) (*domain.Field, bool) {
	f, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		c.metrics.ObserveCache("hit")
		c.logger.Debug("field cache hit", "key", key)
		return f, true
	case errors.Is(err, domain.ErrCacheMiss):
		c.metrics.ObserveCache("miss")
	default:
		c.metrics.ObserveCache("error")
		c.logger.Warn("field cache lookup failed", "key", key, "error", err)
	}
	return nil, false
}
