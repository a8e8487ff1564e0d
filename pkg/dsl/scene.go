package dsl

import "github.com/aretw0/strata/pkg/domain"

// SceneBuilder provides a fluent API for configuring a scene.
// Source modifiers (Vector, Burgers, Material, Gauss) apply to the most
// recently added source and are ignored before the first one.
type SceneBuilder struct {
	scene domain.Scene
}

// Title sets the human readable title.
func (s *SceneBuilder) Title(title string) *SceneBuilder {
	s.scene.Title = title
	return s
}

// Point adds a point source at (x, y, z).
func (s *SceneBuilder) Point(x, y, z float64) *SceneBuilder {
	s.scene.Sources = append(s.scene.Sources, domain.SourceSpec{
		Type:     domain.SourceTypePoint,
		Position: []float64{x, y, z},
	})
	return s
}

// Triangle adds a triangular dislocation with the given vertices.
func (s *SceneBuilder) Triangle(v1, v2, v3 domain.Vec3) *SceneBuilder {
	s.scene.Sources = append(s.scene.Sources, domain.SourceSpec{
		Type: domain.SourceTypeTriangle,
		Vertices: [][]float64{
			{v1.X, v1.Y, v1.Z},
			{v2.X, v2.Y, v2.Z},
			{v3.X, v3.Y, v3.Z},
		},
	})
	return s
}

// Vector sets the displacement vector of the last point source.
func (s *SceneBuilder) Vector(x, y, z float64) *SceneBuilder {
	if last := s.last(); last != nil {
		last.Vector = []float64{x, y, z}
	}
	return s
}

// Burgers sets the Burgers vector of the last triangle source.
func (s *SceneBuilder) Burgers(x, y, z float64) *SceneBuilder {
	if last := s.last(); last != nil {
		last.Burgers = []float64{x, y, z}
	}
	return s
}

// Material sets the elastic constants of the last source.
func (s *SceneBuilder) Material(shear, poisson float64) *SceneBuilder {
	if last := s.last(); last != nil {
		last.Shear = shear
		last.Poisson = poisson
	}
	return s
}

// Gauss sets the quadrature order of the last triangle source.
func (s *SceneBuilder) Gauss(order int) *SceneBuilder {
	if last := s.last(); last != nil {
		last.Gauss = order
	}
	return s
}

// Grid sets the sampling plane.
func (s *SceneBuilder) Grid(min, max float64, n int, z float64) *SceneBuilder {
	s.scene.Grid = domain.GridSpec{Min: min, Max: max, N: n, Z: z}
	return s
}

// Components restricts the rendered components. Without it all six are drawn.
func (s *SceneBuilder) Components(cs ...domain.Component) *SceneBuilder {
	s.scene.Components = append(s.scene.Components, cs...)
	return s
}

// Build returns the underlying domain.Scene.
func (s *SceneBuilder) Build() domain.Scene {
	return s.scene
}

func (s *SceneBuilder) last() *domain.SourceSpec {
	if len(s.scene.Sources) == 0 {
		return nil
	}
	return &s.scene.Sources[len(s.scene.Sources)-1]
}
