package memory_test

import (
	"testing"

	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	contract "github.com/aretw0/strata/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	scenes := map[string]domain.Scene{
		"single": {
			ID:      "single",
			Sources: []domain.SourceSpec{{Type: domain.SourceTypePoint, Position: []float64{0, 0, 0}, Vector: []float64{1, 0, 0}}},
		},
		"pair": {
			ID: "pair",
			Sources: []domain.SourceSpec{
				{Type: domain.SourceTypePoint, Position: []float64{0, 0, 0}, Vector: []float64{1, 0, 0}},
				{Type: domain.SourceTypeTriangle, Vertices: [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, Burgers: []float64{0, 0, 1}},
			},
			Grid: domain.GridSpec{Min: -2, Max: 2, N: 11, Z: 0.5},
		},
	}

	list := make([]domain.Scene, 0, len(scenes))
	for _, s := range scenes {
		list = append(list, s)
	}
	loader, err := memory.NewLoader(list...)
	require.NoError(t, err)

	contract.SceneLoaderContractTest(t, loader, scenes)
}

func TestNewLoader_Rejects(t *testing.T) {
	_, err := memory.NewLoader(domain.Scene{})
	assert.Error(t, err)

	_, err = memory.NewLoader(domain.Scene{ID: "a"}, domain.Scene{ID: "a"})
	assert.Error(t, err)
}
