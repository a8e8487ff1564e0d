package main

import (
	"context"
	"testing"

	loamAdapter "github.com/aretw0/strata/pkg/adapters/loam"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	require.NoError(t, generate(ctx, dir))

	loader, err := loamAdapter.Open(dir)
	require.NoError(t, err)

	ids, err := loader.ListScenes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"point", "triangle", "original", "dipole"}, ids)

	for _, id := range ids {
		scene, err := loader.GetScene(ctx, id)
		require.NoError(t, err, id)
		assert.NoError(t, schema.ValidateScene(scene), id)
	}

	ref, err := loader.GetScene(ctx, "original")
	require.NoError(t, err)
	require.Len(t, ref.Sources, 1)
	src := ref.Sources[0]
	assert.Equal(t, domain.SourceTypeTriangle, src.Type)
	assert.Equal(t, []float64{1, 0, -1}, src.Burgers)
	assert.Equal(t, 8, src.Gauss)
	assert.Equal(t, domain.DefaultGrid, ref.Grid)
	assert.Equal(t, domain.AllComponents(), ref.Components)
}
