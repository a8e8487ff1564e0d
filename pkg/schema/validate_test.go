package schema

import (
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScene() domain.Scene {
	return domain.Scene{
		ID: "ok",
		Sources: []domain.SourceSpec{
			{Type: "point", Vector: []float64{1, 0, 0}},
			{Type: "triangle", Vertices: [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, Burgers: []float64{0, 0, 1}, Gauss: 4},
		},
		Components: []domain.Component{domain.Sxx, domain.Szz},
	}
}

func TestValidateScene_Success(t *testing.T) {
	assert.NoError(t, ValidateScene(validScene()))

	s := validScene()
	s.Grid = domain.GridSpec{Min: -1, Max: 1, N: 3}
	assert.NoError(t, ValidateScene(s))
}

func TestValidateScene_CollectsEverything(t *testing.T) {
	s := domain.Scene{
		Sources: []domain.SourceSpec{
			{Type: "point", Vector: []float64{1, 0}},
			{Type: "triangle", Vertices: [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, Burgers: []float64{0, 0, 1}, Gauss: 7},
			{Type: "ring"},
		},
		Grid:       domain.GridSpec{Min: 1, Max: 1, N: 5},
		Components: []domain.Component{domain.Sxy, domain.Sxy, domain.Component(9)},
	}

	err := ValidateScene(s)
	require.Error(t, err)

	errs := ValidationErrors(err)
	keys := make([]string, len(errs))
	for i, e := range errs {
		keys[i] = e.(*ValidationError).Key
	}
	assert.Equal(t, []string{"id", "sources[0]", "sources[1]", "sources[2]", "grid", "components[1]", "components[2]"}, keys)

	assert.ErrorIs(t, err, domain.ErrInvalidSource)
	assert.ErrorIs(t, err, domain.ErrUnsupportedQuadrature)
	assert.ErrorIs(t, err, domain.ErrUnknownSourceType)
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)
	assert.ErrorIs(t, err, domain.ErrUnknownComponent)
	assert.Contains(t, err.Error(), "scene <unnamed> has 7 problems; id: required; sources[0]: ")
}

func TestValidateScene_NoSources(t *testing.T) {
	err := ValidateScene(domain.Scene{ID: "empty"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSource)
	assert.Len(t, ValidationErrors(err), 1)
	assert.Equal(t, "scene empty: sources: at least one source is required", err.Error())
}

func TestValidationErrors_NonAggregate(t *testing.T) {
	assert.Nil(t, ValidationErrors(assert.AnError))
}
