package source

import (
	"github.com/aretw0/strata/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// singularityRadius is the distance below which the fields are not evaluated.
const singularityRadius = 1e-10

// PointSource is a displacement discontinuity concentrated at a point.
type PointSource struct {
	pos      domain.Vec3
	u        domain.Vec3
	material domain.Material
}

// PointOption configures a PointSource.
type PointOption func(*PointSource)

// WithMaterial overrides the default unit-shear material.
func WithMaterial(m domain.Material) PointOption {
	return func(p *PointSource) {
		p.material = m
	}
}

// NewPointSource creates a point source at pos with displacement vector u.
func NewPointSource(pos, u domain.Vec3, opts ...PointOption) (*PointSource, error) {
	p := &PointSource{
		pos:      pos,
		u:        u,
		material: domain.DefaultMaterial,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.material.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Position returns the application point.
func (p *PointSource) Position() domain.Vec3 { return p.pos }

// Material returns the elastic constants.
func (p *PointSource) Material() domain.Material { return p.material }

// Stress implements ports.Evaluator.
func (p *PointSource) Stress(at domain.Vec3) domain.Stress {
	d := r3.Sub(at, p.pos)
	r := r3.Norm(d)
	if r < singularityRadius {
		return domain.Stress{}
	}

	rCube := r * r * r
	r5 := rCube * r * r

	mu := p.material.Shear
	nu := p.material.Poisson
	a := 2 * mu
	lambda := p.material.Lambda()
	c2 := 3 - 4*nu

	d1 := c2/rCube - 3/r5*d.X*d.X
	d2 := c2/rCube - 3/r5*d.Y*d.Y
	d3 := c2/rCube - 3/r5*d.Z*d.Z
	d4 := -3 / r5 * d.X * d.Y
	d5 := -3 / r5 * d.Y * d.Z
	d6 := -3 / r5 * d.X * d.Z
	inv := -1 / rCube

	ux, uy, uz := p.u.X, p.u.Y, p.u.Z

	duxDx := ux*d1 + uy*d4 + uz*d6
	duxDy := ux*d4 + uy*inv
	duxDz := ux*d6 + uz*inv

	duyDx := uy*d4 + ux*inv
	duyDy := uy*d2 + ux*d4 + uz*d5
	duyDz := uy*d5 + uz*inv

	duzDx := uz*d6 + ux*inv
	duzDy := uz*d5 + uy*inv
	duzDz := uz*d3 + ux*d6 + uy*d5

	b := lambda * (duxDx + duyDy + duzDz)

	return domain.Stress{
		domain.Sxx: a*duxDx + b,
		domain.Sxy: mu * (duxDy + duyDx),
		domain.Sxz: mu * (duxDz + duzDx),
		domain.Syy: a*duyDy + b,
		domain.Syz: mu * (duyDz + duzDy),
		domain.Szz: a*duzDz + b,
	}
}
