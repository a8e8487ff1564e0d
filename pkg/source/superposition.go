package source

import (
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// Superposition sums the fields of several evaluators.
type Superposition []ports.Evaluator

// Stress implements ports.Evaluator. An empty superposition is stress free.
func (s Superposition) Stress(at domain.Vec3) domain.Stress {
	var total domain.Stress
	for _, e := range s {
		total = total.Add(e.Stress(at))
	}
	return total
}
