package grid_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/grid"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/aretw0/strata/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// coordEvaluator encodes the query point into the tensor so tests can check placement.
var coordEvaluator = ports.EvaluatorFunc(func(p domain.Vec3) domain.Stress {
	return domain.Stress{p.X, p.Y, p.Z, p.X + p.Y, 0, 7}
})

func TestSampler_Sample(t *testing.T) {
	g := domain.GridSpec{Min: -1, Max: 1, N: 5, Z: 2}
	s := grid.NewSampler(grid.WithWorkers(2))

	f, err := s.Sample(context.Background(), coordEvaluator, g, domain.Sxx)
	require.NoError(t, err)
	require.Equal(t, 5, f.Size())
	for i := 0; i < g.N; i++ {
		require.Len(t, f.Values[i], g.N)
		for j := 0; j < g.N; j++ {
			assert.InDelta(t, g.Coord(i), f.At(i, j), 1e-15)
		}
	}

	f, err = s.Sample(context.Background(), coordEvaluator, g, domain.Sxy)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, f.At(3, 0), 1e-15)
	assert.InDelta(t, 1.0, f.At(0, 4), 1e-15)
	assert.Equal(t, domain.Sxy, f.Component)
	assert.Equal(t, g, f.Grid)
}

func TestSampler_SampleAll_EvaluatesOncePerPoint(t *testing.T) {
	var calls atomic.Int64
	e := ports.EvaluatorFunc(func(p domain.Vec3) domain.Stress {
		calls.Add(1)
		return coordEvaluator(p)
	})
	g := domain.GridSpec{Min: 0, Max: 1, N: 4, Z: 0}

	fields, err := grid.NewSampler().SampleAll(context.Background(), e, g)
	require.NoError(t, err)
	require.Len(t, fields, domain.NumComponents)
	assert.Equal(t, int64(16), calls.Load())

	for c, f := range fields {
		assert.Equal(t, domain.Component(c), f.Component)
	}
	assert.True(t, fields[domain.Syz].Uniform())
	assert.True(t, fields[domain.Szz].Uniform())
	assert.False(t, fields[domain.Sxx].Uniform())
}

func TestSampler_SampleComponents(t *testing.T) {
	g := domain.GridSpec{Min: 0, Max: 1, N: 3}
	fields, err := grid.NewSampler().SampleComponents(context.Background(), coordEvaluator, g,
		[]domain.Component{domain.Szz, domain.Sxx})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, domain.Szz, fields[0].Component)
	assert.InDelta(t, 7.0, fields[0].At(1, 1), 0)
	assert.Equal(t, domain.Sxx, fields[1].Component)

	_, err = grid.NewSampler().SampleComponents(context.Background(), coordEvaluator, g,
		[]domain.Component{domain.Component(9)})
	assert.ErrorIs(t, err, domain.ErrUnknownComponent)
}

func TestSampler_InvalidInput(t *testing.T) {
	s := grid.NewSampler()

	_, err := s.Sample(context.Background(), coordEvaluator, domain.GridSpec{Min: 0, Max: 1, N: 1}, domain.Sxx)
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)

	_, err = s.Sample(context.Background(), coordEvaluator, domain.DefaultGrid, domain.Component(-1))
	assert.ErrorIs(t, err, domain.ErrUnknownComponent)
}

func TestSampler_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := grid.NewSampler(grid.WithWorkers(1)).Sample(ctx, coordEvaluator, domain.DefaultGrid, domain.Sxx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampler_MatchesSerialEvaluation(t *testing.T) {
	ps, err := source.NewPointSource(domain.V(0, 0, 0), domain.V(1, 0.5, -0.25))
	require.NoError(t, err)
	g := domain.GridSpec{Min: -2, Max: 2, N: 9, Z: 1}

	fields, err := grid.SampleAll(context.Background(), ps, g)
	require.NoError(t, err)

	for i := 0; i < g.N; i++ {
		for j := 0; j < g.N; j++ {
			want := ps.Stress(g.Point(i, j))
			for _, c := range domain.AllComponents() {
				assert.Equal(t, want[c], fields[c].At(i, j))
			}
		}
	}
}
