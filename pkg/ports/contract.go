package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFieldCacheContract runs a suite of tests to verify that a FieldCache implementation
// adheres to the defined interface contract.
func RunFieldCacheContract(t *testing.T, cache FieldCache) {
	ctx := context.Background()
	key := "contract-test-field-" + time.Now().Format("20060102150405")

	newField := func(v float64) *domain.Field {
		f := domain.NewField(domain.GridSpec{Min: -1, Max: 1, N: 3, Z: 0.5}, domain.Syz)
		f.Values[1][2] = v
		return f
	}

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Put and Get", func(t *testing.T) {
		field := newField(42)
		require.NoError(t, cache.Put(ctx, key, field), "Put should not return error")

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, field.Grid, loaded.Grid)
		assert.Equal(t, field.Component, loaded.Component)
		assert.Equal(t, field.Values, loaded.Values)
	})

	t.Run("Isolation", func(t *testing.T) {
		field := newField(1)
		require.NoError(t, cache.Put(ctx, key, field))
		field.Values[1][2] = 99

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 1.0, loaded.Values[1][2], "cached value must not alias the caller's field")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, newField(7)))
		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 7.0, loaded.Values[1][2])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key), "Delete should not return error")
		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")
		assert.NoError(t, cache.Delete(ctx, key), "deleting twice is not an error")
	})
}
