// SPDX-License-Identifier: MIT

package element

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

// Regime boundaries and Colebrook search parameters.
const (
	// LaminarLimit is the largest Reynolds number treated as laminar.
	LaminarLimit = 2000.0

	// TurbulentLimit is the smallest Reynolds number treated as turbulent.
	TurbulentLimit = 4000.0

	// TransitionSpread is the standard deviation of sampled transition
	// friction factors, as a fraction of the mean.
	TransitionSpread = 0.2

	colebrookGuess   = 0.01  // initial f for the Colebrook search
	colebrookMaxIter = 100   // Newton iterations before ErrNoConvergence
	colebrookRelTol  = 1e-14 // relative step size that counts as converged
	colebrookMaxHalf = 60    // step halvings allowed to stay inside the log domain
)

// Regime classifies a Reynolds number.
type Regime uint8

const (
	// Laminar is Re ≤ LaminarLimit.
	Laminar Regime = iota + 1
	// Transition is LaminarLimit < Re < TurbulentLimit.
	Transition
	// Turbulent is Re ≥ TurbulentLimit.
	Turbulent
)

// String implements fmt.Stringer.
func (r Regime) String() string {
	switch r {
	case Laminar:
		return "laminar"
	case Transition:
		return "transition"
	case Turbulent:
		return "turbulent"
	default:
		return fmt.Sprintf("regime(%d)", uint8(r))
	}
}

// RegimeOf classifies re. The caller is responsible for re > 0.
func RegimeOf(re float64) Regime {
	switch {
	case re <= LaminarLimit:
		return Laminar
	case re >= TurbulentLimit:
		return Turbulent
	default:
		return Transition
	}
}

// LaminarFactor returns the Hagen–Poiseuille friction factor 64/Re.
// Returns ErrDomain when re is not finite and > 0.
func LaminarFactor(re float64) (float64, error) {
	if !finitePositive(re) {
		return 0, fmt.Errorf("LaminarFactor(Re=%g): %w", re, ErrDomain)
	}

	return 64 / re, nil
}

// Colebrook solves 1/√f + 2·log10(relRough/3.7 + 2.51/(Re·√f)) = 0 for f.
//
// The search runs Newton's method on y = 1/√f, starting from f = 0.01. The
// function is increasing and concave in y, so after the first step iterates
// approach the root monotonically; steps that would leave the log domain are
// halved.
//
// Errors: ErrDomain for re ≤ 0, NaN/Inf inputs or negative relRough;
// ErrNoConvergence when the iteration cap is reached.
func Colebrook(re, relRough float64) (float64, error) {
	if !finitePositive(re) {
		return 0, fmt.Errorf("Colebrook(Re=%g): %w", re, ErrDomain)
	}
	if relRough < 0 || math.IsNaN(relRough) || math.IsInf(relRough, 0) {
		return 0, fmt.Errorf("Colebrook(relRough=%g): %w", relRough, ErrDomain)
	}

	a := relRough / 3.7
	b := 2.51 / re
	y := 1 / math.Sqrt(colebrookGuess)

	for iter := 0; iter < colebrookMaxIter; iter++ {
		arg := a + b*y
		g := y + 2*math.Log10(arg)
		dg := 1 + 2*b/(arg*math.Ln10)
		step := g / dg

		next := y - step
		for half := 0; next <= 0 || a+b*next <= 0; half++ {
			if half == colebrookMaxHalf {
				return 0, fmt.Errorf("Colebrook(Re=%g): %w", re, ErrDomain)
			}
			step /= 2
			next = y - step
		}

		if math.Abs(next-y) <= colebrookRelTol*math.Abs(next) {
			return 1 / (next * next), nil
		}
		y = next
	}

	return 0, fmt.Errorf("Colebrook(Re=%g, relRough=%g): %w", re, relRough, ErrNoConvergence)
}

// TransitionMean blends the laminar and Colebrook factors at re by its
// position inside (LaminarLimit, TurbulentLimit).
func TransitionMean(re, relRough float64) (float64, error) {
	lam, err := LaminarFactor(re)
	if err != nil {
		return 0, err
	}
	turb, err := Colebrook(re, relRough)
	if err != nil {
		return 0, err
	}
	w := (re - LaminarLimit) / (TurbulentLimit - LaminarLimit)

	return lam + w*(turb-lam), nil
}

// FrictionFactor returns the Darcy friction factor for re and relRough.
// Only the transition regime consults policy; a nil policy means ExpectedValue.
func FrictionFactor(re, relRough float64, policy TransitionPolicy) (float64, error) {
	if !finitePositive(re) {
		return 0, fmt.Errorf("FrictionFactor(Re=%g): %w", re, ErrDomain)
	}
	switch RegimeOf(re) {
	case Laminar:
		return LaminarFactor(re)
	case Turbulent:
		return Colebrook(re, relRough)
	}

	mean, err := TransitionMean(re, relRough)
	if err != nil {
		return 0, err
	}
	if policy == nil {
		return mean, nil
	}

	return policy.Resolve(mean), nil
}

// TransitionPolicy resolves a transition-regime friction factor from the
// interpolated mean.
type TransitionPolicy interface {
	Resolve(mean float64) float64
}

// ExpectedValue returns the mean unchanged. It is the default policy and
// keeps the constitutive law deterministic.
type ExpectedValue struct{}

// Resolve implements TransitionPolicy.
func (ExpectedValue) Resolve(mean float64) float64 { return mean }

// NormalSampler draws transition factors from N(mean, TransitionSpread·mean).
// It is safe for concurrent use; the random source is guarded by a mutex.
type NormalSampler struct {
	mu  sync.Mutex
	src rand.Source
}

// NewNormalSampler returns a sampler reading from src.
// A nil src falls back to the process-wide generator and is not reproducible.
func NewNormalSampler(src rand.Source) *NormalSampler {
	return &NormalSampler{src: src}
}

// NewSeededSampler returns a reproducible sampler backed by PCG(seed, seed).
func NewSeededSampler(seed uint64) *NormalSampler {
	return NewNormalSampler(rand.NewPCG(seed, seed))
}

// Resolve implements TransitionPolicy.
func (s *NormalSampler) Resolve(mean float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := distuv.Normal{Mu: mean, Sigma: TransitionSpread * math.Abs(mean), Src: s.src}

	return d.Rand()
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
