package domain

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a point or a vector in 3D space.
type Vec3 = r3.Vec

// V builds a Vec3 from its components.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// VecFromSlice converts a 3-element slice into a Vec3.
func VecFromSlice(s []float64) (Vec3, error) {
	if len(s) != 3 {
		return Vec3{}, fmt.Errorf("expected 3 components, got %d", len(s))
	}
	return V(s[0], s[1], s[2]), nil
}

// VecSlice returns the components of v as a slice.
func VecSlice(v Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
