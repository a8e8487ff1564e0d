package domain

import "gonum.org/v1/gonum/floats"

// Field is one tensor component sampled over a grid.
// Values[i][j] is the sample at x = Grid.Coord(i), y = Grid.Coord(j).
type Field struct {
	Grid      GridSpec    `json:"grid"`
	Component Component   `json:"component"`
	Values    [][]float64 `json:"values"`
}

// NewField allocates an N x N field for the given grid.
func NewField(g GridSpec, c Component) *Field {
	values := make([][]float64, g.N)
	backing := make([]float64, g.N*g.N)
	for i := range values {
		values[i] = backing[i*g.N : (i+1)*g.N : (i+1)*g.N]
	}
	return &Field{Grid: g, Component: c, Values: values}
}

// At returns the sample at row i, column j.
func (f *Field) At(i, j int) float64 {
	return f.Values[i][j]
}

// Size returns the number of samples per axis.
func (f *Field) Size() int {
	return len(f.Values)
}

// Range returns the minimum and maximum sampled values.
func (f *Field) Range() (lo, hi float64) {
	if len(f.Values) == 0 {
		return 0, 0
	}
	lo, hi = floats.Min(f.Values[0]), floats.Max(f.Values[0])
	for _, row := range f.Values[1:] {
		if m := floats.Min(row); m < lo {
			lo = m
		}
		if m := floats.Max(row); m > hi {
			hi = m
		}
	}
	return lo, hi
}

// Uniform reports whether every sample has the same value, in which case
// there is nothing to contour.
func (f *Field) Uniform() bool {
	lo, hi := f.Range()
	return lo == hi
}
