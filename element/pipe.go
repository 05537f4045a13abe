// SPDX-License-Identifier: MIT

package element

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvnet/fluid"
)

// Gravity is the gravitational acceleration used by Darcy–Weisbach, m/s².
const Gravity = 9.81

// Pipe is a circular pipe segment obeying Darcy–Weisbach.
//
// Geometry and fluid are fixed at construction. Q (m³/s, signed, start→end
// positive) is written by the solver; V, Re, f and hl are derived from it on
// every call.
type Pipe struct {
	name       string
	start, end string
	length     float64 // L, m
	diameter   float64 // d, m
	roughness  float64 // absolute roughness, m
	relRough   float64 // roughness/diameter
	area       float64 // π d²/4, m²
	fluid      *fluid.Fluid
	transition TransitionPolicy

	q float64 // signed volumetric flow, m³/s
}

var _ Carrier = (*Pipe)(nil)

// NewPipe builds a pipe between from and to. length, diameter and roughness
// are in metres; the endpoints are canonicalized so that Start() < End().
//
// Errors: ErrEmptyNode, ErrSelfLoop, ErrBadGeometry, ErrNilFluid, ErrOptionViolation.
func NewPipe(from, to string, length, diameter, roughness float64, f *fluid.Fluid, opts ...Option) (*Pipe, error) {
	start, end, _, err := endpoints(from, to)
	if err != nil {
		return nil, fmt.Errorf("NewPipe: %w", err)
	}
	if !finitePositive(length) || !finitePositive(diameter) {
		return nil, fmt.Errorf("NewPipe(%s,%s): L=%g d=%g: %w", from, to, length, diameter, ErrBadGeometry)
	}
	if roughness < 0 || math.IsNaN(roughness) || math.IsInf(roughness, 0) {
		return nil, fmt.Errorf("NewPipe(%s,%s): roughness=%g: %w", from, to, roughness, ErrBadGeometry)
	}
	if f == nil {
		return nil, fmt.Errorf("NewPipe(%s,%s): %w", from, to, ErrNilFluid)
	}
	o, err := applyOptions(start, end, opts)
	if err != nil {
		return nil, fmt.Errorf("NewPipe: %w", err)
	}

	return &Pipe{
		name:       o.name,
		start:      start,
		end:        end,
		length:     length,
		diameter:   diameter,
		roughness:  roughness,
		relRough:   roughness / diameter,
		area:       math.Pi / 4 * diameter * diameter,
		fluid:      f,
		transition: o.transition,
	}, nil
}

// Name implements Branch.
func (p *Pipe) Name() string { return p.name }

// Kind implements Branch.
func (p *Pipe) Kind() Kind { return KindPipe }

// Start implements Branch.
func (p *Pipe) Start() string { return p.start }

// End implements Branch.
func (p *Pipe) End() string { return p.end }

// Length returns L in metres.
func (p *Pipe) Length() float64 { return p.length }

// Diameter returns d in metres.
func (p *Pipe) Diameter() float64 { return p.diameter }

// Roughness returns the absolute roughness in metres.
func (p *Pipe) Roughness() float64 { return p.roughness }

// RelativeRoughness returns roughness/diameter.
func (p *Pipe) RelativeRoughness() float64 { return p.relRough }

// Area returns the cross-sectional area in m².
func (p *Pipe) Area() float64 { return p.area }

// Fluid returns the shared fluid descriptor.
func (p *Pipe) Fluid() *fluid.Fluid { return p.fluid }

// Flow returns the signed volumetric flow in m³/s.
func (p *Pipe) Flow() float64 { return p.q }

// SetFlow stores a signed volumetric flow in m³/s.
func (p *Pipe) SetFlow(q float64) { p.q = q }

// Velocity returns the signed mean velocity Q/A in m/s.
func (p *Pipe) Velocity() float64 { return p.q / p.area }

// Reynolds returns ρ|V|d/μ. Flow direction does not change the regime.
func (p *Pipe) Reynolds() float64 {
	return p.fluid.Density() * math.Abs(p.Velocity()) * p.diameter / p.fluid.Viscosity()
}

// FrictionFactor returns the Darcy friction factor at the stored flow.
// A zero flow has no Reynolds number and yields ErrDomain.
func (p *Pipe) FrictionFactor() (float64, error) {
	f, err := FrictionFactor(p.Reynolds(), p.relRough, p.transition)
	if err != nil {
		return 0, fmt.Errorf("pipe %s: %w", p.name, err)
	}

	return f, nil
}

// HeadLoss returns the unsigned Darcy–Weisbach head loss f·(L/d)·V²/(2g) in
// metres of fluid. A pipe without flow loses no head.
func (p *Pipe) HeadLoss() (float64, error) {
	if p.q == 0 {
		return 0, nil
	}
	f, err := p.FrictionFactor()
	if err != nil {
		return 0, err
	}
	v := p.Velocity()

	return f * (p.length / p.diameter) * (v * v / (2 * Gravity)), nil
}

// SignedDrop implements Branch: direction sign × flow sign × head loss.
func (p *Pipe) SignedDrop(dir Direction) (float64, error) {
	hl, err := p.HeadLoss()
	if err != nil {
		return 0, err
	}

	return dir.Sign() * sign(p.q) * hl, nil
}

// String implements fmt.Stringer.
func (p *Pipe) String() string {
	return fmt.Sprintf("pipe %s (L=%gm d=%gm)", p.name, p.length, p.diameter)
}
