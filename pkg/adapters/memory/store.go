package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/strata/pkg/domain"
)

// FieldCache implements ports.FieldCache in memory.
// Safe for concurrent use.
type FieldCache struct {
	data map[string]entry
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
}

type entry struct {
	field   *domain.Field
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// FieldCacheOption configures a FieldCache.
type FieldCacheOption func(*FieldCache)

// WithTTL sets the expiration for cached fields. Zero keeps them forever.
func WithTTL(ttl time.Duration) FieldCacheOption {
	return func(c *FieldCache) {
		c.ttl = ttl
	}
}

// WithClock replaces time.Now as the source of expiry timestamps.
func WithClock(now func() time.Time) FieldCacheOption {
	return func(c *FieldCache) {
		c.now = now
	}
}

// NewFieldCache creates a new in-memory field cache.
func NewFieldCache(opts ...FieldCacheOption) *FieldCache {
	c := &FieldCache{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put stores a private copy of the field and drops any expired entries.
func (c *FieldCache) Put(ctx context.Context, key string, field *domain.Field) error {
	e := entry{field: cloneField(field)}
	now := c.now()
	if c.ttl > 0 {
		e.expires = now.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweep(now)
	c.data[key] = e
	return nil
}

// Get returns a copy so callers cannot mutate cached values through the pointer.
func (c *FieldCache) Get(ctx context.Context, key string) (*domain.Field, error) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if e.expired(now) {
		c.mu.Lock()
		if cur, ok := c.data[key]; ok && cur.expired(now) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return nil, domain.ErrCacheMiss
	}
	return cloneField(e.field), nil
}

// Delete removes the key.
func (c *FieldCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached fields, expired ones included until swept.
func (c *FieldCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// sweep must be called with mu held for writing.
func (c *FieldCache) sweep(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for k, e := range c.data {
		if e.expired(now) {
			delete(c.data, k)
		}
	}
}

func cloneField(f *domain.Field) *domain.Field {
	out := domain.NewField(f.Grid, f.Component)
	for i := range f.Values {
		copy(out.Values[i], f.Values[i])
	}
	return out
}
