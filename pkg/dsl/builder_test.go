package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Scenes(t *testing.T) {
	b := New()

	b.Add("dipole").
		Title("Opposing point pair").
		Point(-1, 0, 0).Vector(1, 0, 0).
		Point(1, 0, 0).Vector(-1, 0, 0).
		Grid(-3, 3, 41, 0.5).
		Components(domain.Sxx, domain.Szz)

	b.Add("slip").
		Triangle(domain.V(0, 0, 0), domain.V(1, 0, 0), domain.V(0, 1, 0)).
		Burgers(1e-6, 0, 0).
		Material(30e9, 0.25).
		Gauss(6)

	loader, err := b.Build()
	require.NoError(t, err)

	ctx := context.Background()
	ids, err := loader.ListScenes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dipole", "slip"}, ids)

	dipole, err := loader.GetScene(ctx, "dipole")
	require.NoError(t, err)
	assert.Equal(t, "Opposing point pair", dipole.Title)
	require.Len(t, dipole.Sources, 2)
	assert.Equal(t, []float64{1, 0, 0}, dipole.Sources[1].Position)
	assert.Equal(t, []float64{-1, 0, 0}, dipole.Sources[1].Vector)
	assert.Equal(t, domain.GridSpec{Min: -3, Max: 3, N: 41, Z: 0.5}, dipole.Grid)
	assert.Equal(t, []domain.Component{domain.Sxx, domain.Szz}, dipole.Components)

	slip, err := loader.GetScene(ctx, "slip")
	require.NoError(t, err)
	require.Len(t, slip.Sources, 1)
	src := slip.Sources[0]
	assert.Equal(t, domain.SourceTypeTriangle, src.Type)
	assert.Equal(t, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, src.Vertices)
	assert.Equal(t, 30e9, src.Shear)
	assert.Equal(t, 6, src.Gauss)
	assert.Equal(t, domain.DefaultGrid, slip.GridOrDefault())
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New()
	first := b.Add("a").Point(0, 0, 0)
	second := b.Add("a").Vector(0, 0, 1)

	assert.Same(t, first, second)
	assert.Equal(t, []float64{0, 0, 1}, second.Build().Sources[0].Vector)
}

func TestBuilder_ModifiersBeforeSource(t *testing.T) {
	s := New().Add("empty").Vector(1, 0, 0).Material(1, 0.25).Gauss(4)
	assert.Empty(t, s.Build().Sources)
}

func TestBuilder_ReportsEveryInvalidScene(t *testing.T) {
	b := New()
	b.Add("no-sources")
	b.Add("bad-gauss").
		Triangle(domain.V(0, 0, 0), domain.V(1, 0, 0), domain.V(0, 1, 0)).
		Burgers(1, 0, 0).
		Gauss(7)
	b.Add("ok").Point(0, 0, 0).Vector(1, 0, 0)

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scene no-sources")
	assert.Contains(t, err.Error(), "scene bad-gauss")
	assert.NotContains(t, err.Error(), "scene ok")
	assert.ErrorIs(t, err, domain.ErrUnsupportedQuadrature)
}
