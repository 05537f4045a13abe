// SPDX-License-Identifier: MIT

package network

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/hashicorp/go-metrics"
)

// Solver defaults.
const (
	DefaultTolerance     = 1e-9
	DefaultMaxIterations = 100
	DefaultMaxBacktracks = 30
)

// DefaultJacobianStep is the relative forward-difference step, √ε.
var DefaultJacobianStep = math.Sqrt(2.220446049250313e-16)

// SolveOption configures a single call to Solve.
type SolveOption func(*solveOptions)

type solveOptions struct {
	ctx           context.Context
	tolerance     float64
	maxIterations int
	maxBacktracks int
	jacobianStep  float64
	reference     string
	logger        *slog.Logger
	sink          metrics.MetricSink
	history       func(iter int, norm float64)
	err           error
}

func defaultSolveOptions() solveOptions {
	return solveOptions{
		ctx:           context.Background(),
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
		maxBacktracks: DefaultMaxBacktracks,
		jacobianStep:  DefaultJacobianStep,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		sink:          &metrics.BlackholeSink{},
	}
}

func (o *solveOptions) fail(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

// WithTolerance sets the infinity-norm threshold on the residual vector.
func WithTolerance(tol float64) SolveOption {
	return func(o *solveOptions) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.fail("tolerance %v must be finite and > 0", tol)
			return
		}
		o.tolerance = tol
	}
}

// WithMaxIterations caps the number of Newton steps.
func WithMaxIterations(n int) SolveOption {
	return func(o *solveOptions) {
		if n < 1 {
			o.fail("max iterations %d must be >= 1", n)
			return
		}
		o.maxIterations = n
	}
}

// WithMaxBacktracks caps the step halvings per Newton step.
func WithMaxBacktracks(n int) SolveOption {
	return func(o *solveOptions) {
		if n < 0 {
			o.fail("max backtracks %d must be >= 0", n)
			return
		}
		o.maxBacktracks = n
	}
}

// WithJacobianStep sets the relative forward-difference step.
func WithJacobianStep(h float64) SolveOption {
	return func(o *solveOptions) {
		if !(h > 0) || h >= 1 {
			o.fail("jacobian step %v must be in (0, 1)", h)
			return
		}
		o.jacobianStep = h
	}
}

// WithReferenceNode selects the junction whose continuity equation is dropped.
func WithReferenceNode(name string) SolveOption {
	return func(o *solveOptions) {
		if name == "" {
			o.fail("empty reference node")
			return
		}
		o.reference = name
	}
}

// WithLogger routes solver logs to l.
func WithLogger(l *slog.Logger) SolveOption {
	return func(o *solveOptions) {
		if l == nil {
			o.fail("nil logger")
			return
		}
		o.logger = l
	}
}

// WithMetrics routes solver telemetry to sink.
func WithMetrics(sink metrics.MetricSink) SolveOption {
	return func(o *solveOptions) {
		if sink == nil {
			o.fail("nil metric sink")
			return
		}
		o.sink = sink
	}
}

// WithContext lets ctx cancel the iteration between Newton steps.
func WithContext(ctx context.Context) SolveOption {
	return func(o *solveOptions) {
		if ctx == nil {
			o.fail("nil context")
			return
		}
		o.ctx = ctx
	}
}

// WithHistory calls fn with the residual norm of the initial guess
// (iteration 0) and after every accepted Newton step.
func WithHistory(fn func(iter int, norm float64)) SolveOption {
	return func(o *solveOptions) {
		o.history = fn
	}
}
