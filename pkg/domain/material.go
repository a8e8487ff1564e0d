package domain

import "fmt"

// Material holds isotropic linear elastic constants.
type Material struct {
	Shear   float64 `json:"shear" yaml:"shear" mapstructure:"shear"`
	Poisson float64 `json:"poisson" yaml:"poisson" mapstructure:"poisson"`
}

// DefaultMaterial is the unit-shear material used by point sources.
var DefaultMaterial = Material{Shear: 1, Poisson: 0.25}

// Validate rejects non-positive shear moduli and Poisson ratios outside (-1, 0.5).
func (m Material) Validate() error {
	if m.Shear <= 0 {
		return fmt.Errorf("%w: shear modulus must be positive, got %g", ErrInvalidMaterial, m.Shear)
	}
	if m.Poisson <= -1 || m.Poisson >= 0.5 {
		return fmt.Errorf("%w: poisson ratio must be in (-1, 0.5), got %g", ErrInvalidMaterial, m.Poisson)
	}
	return nil
}

// Lambda returns Lamé's first parameter.
func (m Material) Lambda() float64 {
	return 2 * m.Shear * m.Poisson / (1 - 2*m.Poisson)
}
