package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/strata/pkg/adapters/redis"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisFieldCache_Contract(t *testing.T) {
	_, client := newClient(t)

	cache := redis.NewFromClient(client)
	ports.RunFieldCacheContract(t, cache)
}

func TestRedisFieldCache_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	field := domain.NewField(domain.DefaultGrid, domain.Sxx)
	require.NoError(t, cache.Put(ctx, "k", field))

	_, err := cache.Get(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisFieldCache_Prefix(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "field-1", domain.NewField(domain.DefaultGrid, domain.Szz)))
	assert.True(t, mr.Exists("custom:app:field-1"), "Expected key with custom prefix to exist")
	assert.NoError(t, cache.Ping(ctx))
}

func TestRedisFieldCache_CorruptPayload(t *testing.T) {
	mr, client := newClient(t)
	cache := redis.NewFromClient(client)

	require.NoError(t, mr.Set("strata:field:bad", "{not json"))
	_, err := cache.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
}
