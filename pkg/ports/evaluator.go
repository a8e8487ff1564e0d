package ports

import "github.com/aretw0/strata/pkg/domain"

// Evaluator computes the stress tensor induced at a point.
// Implementations must be pure: the result depends only on the point and the
// evaluator's construction parameters, and concurrent calls are safe.
type Evaluator interface {
	Stress(at domain.Vec3) domain.Stress
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(at domain.Vec3) domain.Stress

// Stress calls f(at).
func (f EvaluatorFunc) Stress(at domain.Vec3) domain.Stress {
	return f(at)
}
