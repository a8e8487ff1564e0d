package domain

import (
	"fmt"
	"strings"
)

// Component identifies one of the six independent entries of a symmetric stress tensor.
type Component int

// Tensor components in their fixed reporting order.
const (
	Sxx Component = iota
	Sxy
	Sxz
	Syy
	Syz
	Szz
)

// NumComponents is the number of independent entries of a symmetric 3x3 tensor.
const NumComponents = 6

var componentNames = [NumComponents]string{"Sxx", "Sxy", "Sxz", "Syy", "Syz", "Szz"}

// AllComponents returns every component in reporting order.
func AllComponents() []Component {
	return []Component{Sxx, Sxy, Sxz, Syy, Syz, Szz}
}

// String returns the conventional name (e.g. "Sxy").
func (c Component) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// Valid reports whether c indexes a tensor entry.
func (c Component) Valid() bool {
	return c >= 0 && int(c) < NumComponents
}

// ParseComponent resolves a component name, ignoring case.
func ParseComponent(name string) (Component, error) {
	for i, n := range componentNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Component(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Component) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownComponent, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Component) UnmarshalText(text []byte) error {
	parsed, err := ParseComponent(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Stress holds a symmetric stress tensor as (Sxx, Sxy, Sxz, Syy, Syz, Szz).
type Stress [NumComponents]float64

// Component returns a single entry.
func (s Stress) Component(c Component) float64 {
	return s[c]
}

// Add returns the entry-wise sum of two tensors.
func (s Stress) Add(o Stress) Stress {
	for i := range s {
		s[i] += o[i]
	}
	return s
}

// Tensor expands the compact form into the full symmetric 3x3 matrix.
func (s Stress) Tensor() [3][3]float64 {
	return [3][3]float64{
		{s[Sxx], s[Sxy], s[Sxz]},
		{s[Sxy], s[Syy], s[Syz]},
		{s[Sxz], s[Syz], s[Szz]},
	}
}

// Trace returns Sxx + Syy + Szz.
func (s Stress) Trace() float64 {
	return s[Sxx] + s[Syy] + s[Szz]
}

// IsZero reports whether every entry is zero.
func (s Stress) IsZero() bool {
	return s == Stress{}
}
