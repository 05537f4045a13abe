// SPDX-License-Identifier: MIT

package element

import (
	"fmt"
	"math"
)

// Resistor is a linear branch: ΔV = I·R.
type Resistor struct {
	name       string
	start, end string
	resistance float64
	current    float64 // signed, start→end positive; written by the solver
}

var _ Carrier = (*Resistor)(nil)

// NewResistor builds a resistor between from and to with resistance ohms.
// Endpoints are canonicalized; the default name is "start-end".
//
// Errors: ErrEmptyNode, ErrSelfLoop, ErrBadResistance, ErrOptionViolation.
func NewResistor(from, to string, resistance float64, opts ...Option) (*Resistor, error) {
	start, end, _, err := endpoints(from, to)
	if err != nil {
		return nil, fmt.Errorf("NewResistor: %w", err)
	}
	if !(resistance > 0) || math.IsInf(resistance, 0) {
		return nil, fmt.Errorf("NewResistor(%s,%s): %g: %w", from, to, resistance, ErrBadResistance)
	}
	o, err := applyOptions(start, end, opts)
	if err != nil {
		return nil, fmt.Errorf("NewResistor: %w", err)
	}

	return &Resistor{name: o.name, start: start, end: end, resistance: resistance}, nil
}

// Name implements Branch.
func (r *Resistor) Name() string { return r.name }

// Kind implements Branch.
func (r *Resistor) Kind() Kind { return KindResistor }

// Start implements Branch.
func (r *Resistor) Start() string { return r.start }

// End implements Branch.
func (r *Resistor) End() string { return r.end }

// Resistance returns R in ohms.
func (r *Resistor) Resistance() float64 { return r.resistance }

// Flow returns the signed current in amperes.
func (r *Resistor) Flow() float64 { return r.current }

// SetFlow stores a signed current in amperes.
func (r *Resistor) SetFlow(i float64) { r.current = i }

// DeltaV returns I·R for the stored current.
func (r *Resistor) DeltaV() float64 { return r.current * r.resistance }

// SignedDrop implements Branch. It never fails.
func (r *Resistor) SignedDrop(dir Direction) (float64, error) {
	return dir.Sign() * r.DeltaV(), nil
}

// String implements fmt.Stringer.
func (r *Resistor) String() string {
	return fmt.Sprintf("resistor %s (%g Ω)", r.name, r.resistance)
}
