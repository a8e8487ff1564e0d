package domain

import "fmt"

// GridSpec describes an N x N uniform grid over [Min, Max]^2 on the plane z = Z.
type GridSpec struct {
	Min float64 `json:"min" yaml:"min" mapstructure:"min"`
	Max float64 `json:"max" yaml:"max" mapstructure:"max"`
	N   int     `json:"n" yaml:"n" mapstructure:"n"`
	Z   float64 `json:"z" yaml:"z" mapstructure:"z"`
}

// DefaultGrid is the 51 x 51 grid over [-5, 5]^2 at z = 1.
var DefaultGrid = GridSpec{Min: -5, Max: 5, N: 51, Z: 1}

// MaxGridN bounds the samples per axis so a single request stays under ~161k evaluations.
const MaxGridN = 401

// Validate checks that the grid has between 2 and MaxGridN samples per axis and a positive extent.
func (g GridSpec) Validate() error {
	if g.N < 2 {
		return fmt.Errorf("%w: n must be at least 2, got %d", ErrInvalidGrid, g.N)
	}
	if g.N > MaxGridN {
		return fmt.Errorf("%w: n must be at most %d, got %d", ErrInvalidGrid, MaxGridN, g.N)
	}
	if !(g.Max > g.Min) {
		return fmt.Errorf("%w: max (%g) must exceed min (%g)", ErrInvalidGrid, g.Max, g.Min)
	}
	return nil
}

// Coord returns the i-th abscissa, min + i/(n-1)*(max-min).
func (g GridSpec) Coord(i int) float64 {
	return g.Min + float64(i)/float64(g.N-1)*(g.Max-g.Min)
}

// Point returns the sample location for row i (x) and column j (y).
func (g GridSpec) Point(i, j int) Vec3 {
	return V(g.Coord(i), g.Coord(j), g.Z)
}
