package source

import (
	"math"

	"github.com/aretw0/strata/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleSource is a triangular dislocation element with a uniform Burgers vector.
//
// The field is approximated by line integrals along the three edges; the
// angular dislocation terms of the triangle interior are not included.
type TriangleSource struct {
	vertices [3]domain.Vec3
	burgers  domain.Vec3
	material domain.Material
	gauss    int
	rule     Rule
}

// NewTriangleSource creates a triangle with vertices v1, v2, v3, Burgers vector b,
// elastic constants m and n Gauss points per edge.
func NewTriangleSource(v1, v2, v3, b domain.Vec3, m domain.Material, n int) (*TriangleSource, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	rule, err := GaussRule(n)
	if err != nil {
		return nil, err
	}
	return &TriangleSource{
		vertices: [3]domain.Vec3{v1, v2, v3},
		burgers:  b,
		material: m,
		gauss:    n,
		rule:     rule,
	}, nil
}

// Vertices returns the triangle corners.
func (t *TriangleSource) Vertices() [3]domain.Vec3 { return t.vertices }

// GaussPoints returns the quadrature order per edge.
func (t *TriangleSource) GaussPoints() int { return t.gauss }

// Stress implements ports.Evaluator.
func (t *TriangleSource) Stress(at domain.Vec3) domain.Stress {
	v := t.vertices
	return t.edge(at, v[0], v[1]).
		Add(t.edge(at, v[1], v[2])).
		Add(t.edge(at, v[2], v[0]))
}

// edge integrates the contribution of the segment start->end.
func (t *TriangleSource) edge(p, start, end domain.Vec3) domain.Stress {
	e := r3.Sub(end, start)
	length := r3.Norm(e)
	if length < singularityRadius {
		return domain.Stress{}
	}

	mu, nu := t.material.Shear, t.material.Poisson
	c1 := mu / (4 * math.Pi * (1 - nu))
	c2 := 1 - 2*nu
	b := t.burgers

	var xx, xy, xz, yy, yz, zz float64
	for i, xi := range t.rule.Points {
		pos := r3.Add(start, r3.Scale(xi, e))
		rv := r3.Sub(p, pos)
		r := r3.Norm(rv)
		if r < singularityRadius {
			continue
		}
		n := r3.Scale(1/r, rv)

		k := t.rule.Weights[i] * length * c1 / r

		xx += k * (b.X*(c2+3*n.X*n.X) + b.Y*(3*n.X*n.Y) + b.Z*(3*n.X*n.Z))
		yy += k * (b.X*(3*n.Y*n.X) + b.Y*(c2+3*n.Y*n.Y) + b.Z*(3*n.Y*n.Z))
		zz += k * (b.X*(3*n.Z*n.X) + b.Y*(3*n.Z*n.Y) + b.Z*(c2+3*n.Z*n.Z))
		yz += k * (b.X*(3*n.Y*n.Z*n.X) +
			b.Y*(c2*n.Z+3*n.Y*n.Z*n.Y) +
			b.Z*(c2*n.Y+3*n.Y*n.Z*n.Z))
		xz += k * (b.X*(c2*n.Z+3*n.X*n.Z*n.X) +
			b.Y*(3*n.X*n.Z*n.Y) +
			b.Z*(c2*n.X+3*n.X*n.Z*n.Z))
		xy += k * (b.X*(c2*n.Y+3*n.X*n.Y*n.X) +
			b.Y*(c2*n.X+3*n.X*n.Y*n.Y) +
			b.Z*(3*n.X*n.Y*n.Z))
	}

	return domain.Stress{xx, xy, xz, yy, yz, zz}
}
