// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
)

// Sentinel errors for network construction and analysis.
var (
	// ErrNoBranches indicates a network was built from an empty branch list.
	ErrNoBranches = errors.New("network: no branches")

	// ErrNilBranch indicates a nil entry in the branch list.
	ErrNilBranch = errors.New("network: nil branch")

	// ErrDuplicateBranch indicates two branches share a name.
	ErrDuplicateBranch = errors.New("network: duplicate branch name")

	// ErrUnknownNode indicates a reference to a node that no branch touches.
	ErrUnknownNode = errors.New("network: unknown node")

	// ErrUnknownBranch indicates a reference to a branch name not in the network.
	ErrUnknownBranch = errors.New("network: unknown branch")

	// ErrTopology indicates a loop that cannot be traversed: a node pair with no
	// connecting branch, an ambiguous parallel pair, or an open walk.
	ErrTopology = errors.New("network: topology error")

	// ErrEquationCount indicates the node and loop equations do not match the
	// number of unknowns.
	ErrEquationCount = errors.New("network: system is not exactly determined")

	// ErrGuessLength indicates an initial guess of the wrong length.
	ErrGuessLength = errors.New("network: initial guess has wrong length")

	// ErrUnbalanced indicates external injections that do not sum to zero, so
	// no steady state can satisfy continuity at every node.
	ErrUnbalanced = errors.New("network: injections do not balance")

	// ErrNonConvergence indicates the iteration cap was reached above tolerance.
	ErrNonConvergence = errors.New("network: solver did not converge")

	// ErrSingularJacobian indicates the Newton system could not be factorized.
	ErrSingularJacobian = errors.New("network: singular jacobian")

	// ErrDomain indicates a constitutive law was evaluated outside its domain.
	ErrDomain = errors.New("network: numerical domain error")

	// ErrBusy indicates another analysis or mutation is running on the network.
	ErrBusy = errors.New("network: analysis already in progress")

	// ErrOptionViolation is returned when an invalid option is supplied.
	ErrOptionViolation = errors.New("network: invalid option supplied")
)

// SolveError reports a failed analysis together with the state reached.
type SolveError struct {
	// Iterations is the number of Newton steps taken before failure.
	Iterations int
	// Residual is the infinity norm of the last accepted residual vector.
	Residual float64
	// Err is the cause; it wraps one of the package sentinels.
	Err error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("network: solve failed after %d iterations (|R|=%g): %v", e.Iterations, e.Residual, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *SolveError) Unwrap() error { return e.Err }
