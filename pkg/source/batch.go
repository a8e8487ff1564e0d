package source

import (
	"fmt"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// Batch evaluates e at every xyz triple of coords and returns the tensors
// back to back, six values per point.
func Batch(e ports.Evaluator, coords []float64) ([]float64, error) {
	if len(coords)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d values", domain.ErrInvalidCoordinates, len(coords))
	}
	out := make([]float64, 0, len(coords)*2)
	for i := 0; i < len(coords); i += 3 {
		s := e.Stress(domain.V(coords[i], coords[i+1], coords[i+2]))
		out = append(out, s[:]...)
	}
	return out, nil
}

// EvaluateAll evaluates e at each point.
func EvaluateAll(e ports.Evaluator, points []domain.Vec3) []domain.Stress {
	out := make([]domain.Stress, len(points))
	for i, p := range points {
		out[i] = e.Stress(p)
	}
	return out
}
