package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFieldCache_Contract(t *testing.T) {
	cache := memory.NewFieldCache()
	ports.RunFieldCacheContract(t, cache)
}

func TestMemoryFieldCache_Contract_WithTTL(t *testing.T) {
	cache := memory.NewFieldCache(memory.WithTTL(time.Hour))
	ports.RunFieldCacheContract(t, cache)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestMemoryFieldCache_TTL_Expiration(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := memory.NewFieldCache(memory.WithTTL(time.Second), memory.WithClock(clock.Now))
	ctx := context.Background()

	field := domain.NewField(domain.DefaultGrid, domain.Sxx)
	require.NoError(t, cache.Put(ctx, "k", field))

	_, err := cache.Get(ctx, "k")
	require.NoError(t, err)

	clock.Advance(2 * time.Second)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryFieldCache_TTL_SweepOnPut(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := memory.NewFieldCache(memory.WithTTL(time.Minute), memory.WithClock(clock.Now))
	ctx := context.Background()

	field := domain.NewField(domain.GridSpec{Min: 0, Max: 1, N: 2}, domain.Sxy)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Put(ctx, k, field))
	}
	require.Equal(t, 3, cache.Len())

	clock.Advance(time.Minute)
	require.NoError(t, cache.Put(ctx, "d", field))

	assert.Equal(t, 1, cache.Len())
	_, err := cache.Get(ctx, "d")
	assert.NoError(t, err)
}

func TestMemoryFieldCache_ZeroTTL_KeepsForever(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := memory.NewFieldCache(memory.WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "k", domain.NewField(domain.DefaultGrid, domain.Szz)))
	clock.Advance(24 * 365 * time.Hour)

	_, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
}
