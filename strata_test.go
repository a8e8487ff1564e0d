package strata_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/testutils"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/grid"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/aretw0/strata/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_Integration(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{"fault.md": `---
sources:
  - type: triangle
    vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
    burgers: [1, 0, 0]
grid: {min: -1, max: 2, n: 5, z: 0.5}
components: [Sxz, Syy]
---
# Fault patch`})

	eng, err := strata.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), eng.Name)

	ctx := context.Background()
	ids, err := eng.Scenes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fault"}, ids)

	scene, err := eng.Scene(ctx, "fault")
	require.NoError(t, err)
	assert.Equal(t, "Fault patch", scene.Title)

	out := t.TempDir()
	outcomes, err := eng.Plot(ctx, scene, out)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		require.False(t, o.Skipped, o.Component.String())
		assert.FileExists(t, o.Path)
	}
}

func TestFacade_MissingDirIsEmpty(t *testing.T) {
	eng, err := strata.New(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)

	ids, err := eng.Scenes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = eng.Scene(context.Background(), "any")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

func TestFacade_RequiresDirOrLoader(t *testing.T) {
	_, err := strata.New("")
	assert.Error(t, err)
}

func TestFacade_FieldUsesCache(t *testing.T) {
	cache := memory.NewFieldCache()
	loader, _ := memory.NewLoader()
	eng, err := strata.New("", strata.WithLoader(loader), strata.WithCache(cache), strata.WithWorkers(2))
	require.NoError(t, err)

	req := grid.Request{
		Sources:   []domain.SourceSpec{{Type: domain.SourceTypePoint, Vector: []float64{0, 1, 0}}},
		Grid:      domain.GridSpec{Min: -1, Max: 1, N: 4, Z: 1},
		Component: domain.Syy,
	}
	first, err := eng.Field(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := eng.Field(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Values, second.Values)
	assert.Equal(t, 1, cache.Len())
}

type ttlLocker struct {
	mu   sync.Mutex
	ttls []time.Duration
}

func (l *ttlLocker) Lock(_ context.Context, _ string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ttls = append(l.ttls, ttl)
	return func(context.Context) error { return nil }, nil
}

func TestFacade_LockerWithoutTTLKeepsDefault(t *testing.T) {
	locker := &ttlLocker{}
	loader, _ := memory.NewLoader()
	eng, err := strata.New("", strata.WithLoader(loader), strata.WithLocker(locker, 0))
	require.NoError(t, err)

	_, err = eng.Field(context.Background(), grid.Request{
		Sources:   []domain.SourceSpec{{Type: domain.SourceTypePoint, Vector: []float64{1, 0, 0}}},
		Grid:      domain.GridSpec{Min: -1, Max: 1, N: 3, Z: 1},
		Component: domain.Sxx,
	})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{grid.DefaultLockTTL}, locker.ttls)
}

func TestFacade_WatchUnsupported(t *testing.T) {
	loader, _ := memory.NewLoader()
	eng, err := strata.New("", strata.WithLoader(loader))
	require.NoError(t, err)

	_, err = eng.Watch(context.Background())
	assert.Error(t, err)
}

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, strata.RunDemo(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Two blocks of a header, 3 points x 6 values, and a footer.
	require.Len(t, lines, 2*(1+18+1))
	assert.Equal(t, "Start point source...", lines[0])
	assert.Equal(t, "...End", lines[19])
	assert.Equal(t, "Start triangle source...", lines[20])
	assert.Equal(t, "...End", lines[39])
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(strata.Version))
}

func TestFacade_ExampleScenes(t *testing.T) {
	eng, err := strata.New("examples/scenes")
	require.NoError(t, err)

	ctx := context.Background()
	ids, err := eng.Scenes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dipole", "original", "point", "triangle"}, ids)

	for _, id := range ids {
		scene, err := eng.Scene(ctx, id)
		require.NoError(t, err, id)
		assert.NoError(t, schema.ValidateScene(scene), id)
	}

	dipole, err := eng.Scene(ctx, "dipole")
	require.NoError(t, err)
	assert.Equal(t, "Opposing point pair", dipole.Title, "title falls back to the first heading")
	assert.Equal(t, domain.DefaultGrid, dipole.GridOrDefault())
}
