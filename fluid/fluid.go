// SPDX-License-Identifier: MIT

package fluid

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadProperty indicates a non-positive, NaN or infinite fluid property.
var ErrBadProperty = errors.New("fluid: property must be finite and > 0")

const (
	// WaterDensity is the density of water used by Water, kg/m³.
	WaterDensity = 1000.0

	// WaterViscosity is the dynamic viscosity of water used by Water, Pa·s.
	WaterViscosity = 0.00089
)

// Fluid is an immutable density/viscosity descriptor.
type Fluid struct {
	density   float64 // ρ, kg/m³
	viscosity float64 // μ, Pa·s
}

// New validates and returns a Fluid with the given density and viscosity.
// Returns ErrBadProperty when either value is not finite and strictly positive.
func New(density, viscosity float64) (*Fluid, error) {
	if !positive(density) {
		return nil, fmt.Errorf("New: density %g: %w", density, ErrBadProperty)
	}
	if !positive(viscosity) {
		return nil, fmt.Errorf("New: viscosity %g: %w", viscosity, ErrBadProperty)
	}

	return &Fluid{density: density, viscosity: viscosity}, nil
}

// Water returns water at roughly 25 °C.
func Water() *Fluid {
	return &Fluid{density: WaterDensity, viscosity: WaterViscosity}
}

// Density returns ρ in kg/m³.
func (f *Fluid) Density() float64 { return f.density }

// Viscosity returns the dynamic viscosity μ in Pa·s.
func (f *Fluid) Viscosity() float64 { return f.viscosity }

// KinematicViscosity returns ν = μ/ρ in m²/s.
func (f *Fluid) KinematicViscosity() float64 { return f.viscosity / f.density }

// String implements fmt.Stringer.
func (f *Fluid) String() string {
	return fmt.Sprintf("fluid(rho=%g, mu=%g)", f.density, f.viscosity)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
