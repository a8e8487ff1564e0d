package source

import (
	"math"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointSource_KnownValue(t *testing.T) {
	src, err := NewPointSource(domain.V(0, 0, 0), domain.V(1, 0, 0))
	require.NoError(t, err)

	// mu = 1, nu = 0.25 (lambda = 1) at r = 2 along the load direction.
	got := src.Stress(domain.V(2, 0, 0))
	want := domain.Stress{-0.375, -0.125, -0.125, -0.125, 0, -0.125}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "component %s", domain.Component(i))
	}
}

func TestPointSource_Singularity(t *testing.T) {
	src, err := NewPointSource(domain.V(1, 2, 3), domain.V(1, 2, 0))
	require.NoError(t, err)

	assert.True(t, src.Stress(domain.V(1, 2, 3)).IsZero())
	assert.True(t, src.Stress(domain.V(1, 2, 3+1e-12)).IsZero())
}

func TestPointSource_Pure(t *testing.T) {
	src, err := NewPointSource(domain.V(0, 0, 0), domain.V(1, 2, 0))
	require.NoError(t, err)

	p := domain.V(0.3, -1.7, 1)
	assert.Equal(t, src.Stress(p), src.Stress(p))
}

func TestPointSource_FarFieldDecay(t *testing.T) {
	src, err := NewPointSource(domain.V(0, 0, 0), domain.V(1, 2, 0.5))
	require.NoError(t, err)

	near := src.Stress(domain.V(0.7, -0.4, 1.1))
	far := src.Stress(domain.V(1.4, -0.8, 2.2))
	for i := range near {
		assert.InDelta(t, near[i]/8, far[i], 1e-12*math.Max(1, math.Abs(near[i])), "component %s", domain.Component(i))
	}
}

func TestPointSource_Material(t *testing.T) {
	_, err := NewPointSource(domain.V(0, 0, 0), domain.V(1, 0, 0), WithMaterial(domain.Material{Shear: -1, Poisson: 0.2}))
	assert.ErrorIs(t, err, domain.ErrInvalidMaterial)

	soft, err := NewPointSource(domain.V(0, 0, 0), domain.V(1, 0, 0))
	require.NoError(t, err)
	stiff, err := NewPointSource(domain.V(0, 0, 0), domain.V(1, 0, 0), WithMaterial(domain.Material{Shear: 3, Poisson: 0.25}))
	require.NoError(t, err)

	p := domain.V(1, 1, 1)
	s, h := soft.Stress(p), stiff.Stress(p)
	for i := range s {
		assert.InDelta(t, 3*s[i], h[i], 1e-12, "stress scales with shear modulus at fixed nu")
	}
}
