// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hashicorp/go-metrics"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvnet/element"
	"github.com/katalvlaran/lvnet/matrix"
)

// Solve drives the residual vector of the current layout to zero and returns
// the converged state. guess seeds the chain unknowns in Layout order; nil
// starts every unknown at zero.
//
// On failure the branch flows are restored to what they were before the call
// and the error is a *SolveError wrapping ErrNonConvergence,
// ErrSingularJacobian, ErrDomain or ErrUnbalanced, or one of ErrEquationCount,
// ErrGuessLength, ErrUnbalanced, ErrUnknownNode, ErrOptionViolation, ErrBusy.
//
// Complexity: O(k·m·(m²+E)) for k Newton steps over m unknowns and E branches.
func (n *Network) Solve(guess []float64, opts ...SolveOption) (*Result, error) {
	o := defaultSolveOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !n.mu.TryLock() {
		return nil, ErrBusy
	}
	defer n.mu.Unlock()

	begin := time.Now()
	res, err := n.solve(guess, &o)
	o.sink.IncrCounter(MetricSolveCount, 1)
	o.sink.AddSample(MetricSolveDuration, float32(time.Since(begin).Seconds()*1000))
	if err != nil {
		o.sink.IncrCounterWithLabels(MetricSolveErrorCount, 1,
			[]metrics.Label{LabelError.M(errorClass(err))})
		o.logger.Warn("solve failed", LabelError.L(err))

		return nil, err
	}
	o.sink.AddSample(MetricSolveIterations, float32(res.Iterations))
	o.sink.SetGauge(MetricSolveResidual, float32(res.Residual))
	o.logger.Info("solve converged",
		LabelIteration.L(res.Iterations),
		LabelResidual.L(res.Residual),
		LabelUnknowns.L(len(res.Unknowns)))

	return res, nil
}

func (n *Network) solve(guess []float64, o *solveOptions) (*Result, error) {
	lay, err := n.layout(o.reference)
	if err != nil {
		return nil, err
	}
	var supply float64
	for _, nd := range n.nodes {
		supply += nd.injection
	}
	if math.Abs(supply) > o.tolerance {
		return nil, fmt.Errorf("%w: injections sum to %g", ErrUnbalanced, supply)
	}

	x := make([]float64, len(lay.Unknowns))
	if guess != nil {
		if len(guess) != len(x) {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrGuessLength, len(guess), len(x))
		}
		for i, v := range guess {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: guess[%d] = %v", ErrDomain, i, v)
			}
		}
		copy(x, guess)
	}

	snap := n.snapshot()
	sys := n.bind(lay)
	iters, history, err := sys.newton(x, o)
	if err != nil {
		n.restore(snap)

		return nil, err
	}
	sys.apply(x)

	// The reference equation is implied by the others only up to their
	// combined residual.
	ref := n.nodeByName[lay.Reference]
	if r := ref.Residual(n); math.Abs(r) > float64(len(lay.Junctions))*o.tolerance {
		n.restore(snap)

		return nil, &SolveError{
			Iterations: iters,
			Residual:   history[len(history)-1],
			Err:        fmt.Errorf("%w: reference node %s residual %g", ErrUnbalanced, ref.name, r),
		}
	}

	res, err := n.result(lay, x, iters, history)
	if err != nil {
		n.restore(snap)

		return nil, err
	}

	return res, nil
}

// system evaluates R(x) for one layout.
type system struct {
	net *Network
	lay *Layout
}

// bind makes lay the active layout of n.
func (n *Network) bind(lay *Layout) *system {
	chainOf := make(map[string]*chain, len(n.branches))
	for _, c := range lay.chains {
		for _, s := range c.steps {
			chainOf[s.branch.Name()] = c
		}
	}
	n.chainOf = chainOf

	return &system{net: n, lay: lay}
}

// apply writes the trial vector into the chains and their carriers.
func (s *system) apply(x []float64) {
	for i, c := range s.lay.chains {
		c.apply(x[i])
	}
}

// evaluate fills dst with node residuals followed by loop residuals.
func (s *system) evaluate(dst []float64) error {
	k := 0
	for _, nd := range s.lay.eqs {
		dst[k] = nd.Residual(s.net)
		k++
	}
	for _, l := range s.net.loops {
		r, err := l.Residual()
		if err != nil {
			return err
		}
		dst[k] = r
		k++
	}
	for i, v := range dst {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: residual[%d] = %v", ErrDomain, i, v)
		}
	}

	return nil
}

// residual is apply followed by evaluate.
func (s *system) residual(x, dst []float64) error {
	s.apply(x)

	return s.evaluate(dst)
}

// jacobian builds J[i][j] = ∂R_i/∂x_j by forward differences around x, where
// r = R(x). The network is left holding x.
func (s *system) jacobian(x, r []float64, rel float64) (*matrix.Dense, error) {
	m := len(x)
	jac, err := matrix.NewDense(m, m)
	if err != nil {
		return nil, err
	}
	xp := append([]float64(nil), x...)
	rp := make([]float64, m)
	col := make([]float64, m)
	defer s.apply(x)

	for j := range x {
		xp[j] = x[j] + rel*math.Max(math.Abs(x[j]), 1)
		h := xp[j] - x[j]
		if err = s.residual(xp, rp); err != nil {
			return nil, err
		}
		for i := range rp {
			col[i] = (rp[i] - r[i]) / h
		}
		if err = jac.SetCol(j, col); err != nil {
			return nil, fmt.Errorf("%w: jacobian column %d: %w", ErrDomain, j, err)
		}
		xp[j] = x[j]
	}

	return jac, nil
}

// newton runs damped Newton from x, updating x in place. It returns the number
// of steps taken and the residual norm history.
func (s *system) newton(x []float64, o *solveOptions) (int, []float64, error) {
	m := len(x)
	r := make([]float64, m)
	if err := s.residual(x, r); err != nil {
		return 0, nil, &SolveError{Err: err}
	}
	norm := floats.Norm(r, math.Inf(1))
	history := []float64{norm}
	s.record(o, 0, norm, 1)

	var (
		xt  = make([]float64, m)
		rt  = make([]float64, m)
		neg = make([]float64, m)
	)
	for iter := 0; ; iter++ {
		if norm <= o.tolerance {
			return iter, history, nil
		}
		fail := func(err error) (int, []float64, error) {
			return iter, history, &SolveError{Iterations: iter, Residual: norm, Err: err}
		}
		if iter == o.maxIterations {
			return fail(fmt.Errorf("%w: tolerance %g not reached in %d iterations", ErrNonConvergence, o.tolerance, iter))
		}
		if err := o.ctx.Err(); err != nil {
			return fail(fmt.Errorf("solve canceled: %w", err))
		}

		jac, err := s.jacobian(x, r, o.jacobianStep)
		if err != nil {
			return fail(err)
		}
		lu, err := matrix.Factorize(jac)
		if err != nil {
			if errors.Is(err, matrix.ErrSingular) {
				return fail(fmt.Errorf("%w: %w", ErrSingularJacobian, err))
			}
			return fail(fmt.Errorf("%w: %w", ErrDomain, err))
		}
		floats.ScaleTo(neg, -1, r)
		dx, err := lu.Solve(neg)
		if err != nil {
			return fail(fmt.Errorf("%w: %w", ErrSingularJacobian, err))
		}

		// Backtrack along dx until the residual norm decreases.
		var (
			lambda   = 1.0
			accepted bool
			lastErr  error
			tnorm    float64
		)
		for k := 0; k <= o.maxBacktracks; k++ {
			floats.AddScaledTo(xt, x, lambda, dx)
			if lastErr = s.residual(xt, rt); lastErr == nil {
				if tnorm = floats.Norm(rt, math.Inf(1)); tnorm < norm {
					accepted = true
					break
				}
			}
			lambda /= 2
		}
		if !accepted {
			s.apply(x)
			if lastErr != nil {
				return fail(lastErr)
			}
			return fail(fmt.Errorf("%w: line search stalled at |R|=%g", ErrNonConvergence, norm))
		}

		copy(x, xt)
		copy(r, rt)
		norm = tnorm
		history = append(history, norm)
		s.record(o, iter+1, norm, lambda)
	}
}

func (s *system) record(o *solveOptions, iter int, norm, lambda float64) {
	o.logger.Debug("newton step",
		LabelIteration.L(iter),
		LabelResidual.L(norm),
		"lambda", lambda)
	if o.history != nil {
		o.history(iter, norm)
	}
}

// snapshot holds the branch state present before a solve.
type snapshot struct {
	flows   []float64
	chainOf map[string]*chain
}

func (n *Network) snapshot() snapshot {
	s := snapshot{flows: make([]float64, len(n.branches)), chainOf: n.chainOf}
	for i, b := range n.branches {
		if c, ok := b.(element.Carrier); ok {
			s.flows[i] = c.Flow()
		}
	}

	return s
}

func (n *Network) restore(s snapshot) {
	for i, b := range n.branches {
		if c, ok := b.(element.Carrier); ok {
			c.SetFlow(s.flows[i])
		}
	}
	n.chainOf = s.chainOf
}
