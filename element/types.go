// SPDX-License-Identifier: MIT

package element

import (
	"errors"
	"fmt"
)

// Sentinel errors for branch construction and constitutive evaluation.
var (
	// ErrEmptyNode indicates an endpoint name is empty.
	ErrEmptyNode = errors.New("element: endpoint name is empty")

	// ErrSelfLoop indicates both endpoints name the same node.
	ErrSelfLoop = errors.New("element: branch endpoints must differ")

	// ErrBadResistance indicates a resistance that is not finite and > 0.
	ErrBadResistance = errors.New("element: resistance must be finite and > 0")

	// ErrBadGeometry indicates a pipe length, diameter or roughness out of range.
	ErrBadGeometry = errors.New("element: invalid pipe geometry")

	// ErrBadValue indicates a NaN or infinite source value.
	ErrBadValue = errors.New("element: source value must be finite")

	// ErrNilFluid indicates a pipe was built without a fluid.
	ErrNilFluid = errors.New("element: fluid is nil")

	// ErrDomain indicates an input outside the domain of a friction law,
	// e.g. a non-positive Reynolds number handed to Colebrook.
	ErrDomain = errors.New("element: numerical domain error")

	// ErrNoConvergence indicates the Colebrook root search did not settle.
	ErrNoConvergence = errors.New("element: friction factor did not converge")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("element: invalid option supplied")
)

// Kind tags the branch variant.
type Kind uint8

const (
	// KindResistor is a linear resistor.
	KindResistor Kind = iota + 1
	// KindPipe is a Darcy–Weisbach pipe segment.
	KindPipe
	// KindSource is a fixed potential source (voltage or head).
	KindSource
)

// String returns the lower-case variant name.
func (k Kind) String() string {
	switch k {
	case KindResistor:
		return "resistor"
	case KindPipe:
		return "pipe"
	case KindSource:
		return "source"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Direction is the sense in which a traversal crosses a branch.
type Direction int8

const (
	// Forward walks the branch start→end.
	Forward Direction = 1
	// Reverse walks the branch end→start.
	Reverse Direction = -1
)

// Sign returns +1 for Forward and -1 for Reverse.
func (d Direction) Sign() float64 { return float64(d) }

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}

	return "forward"
}

// Branch is the uniform capability shared by all variants.
type Branch interface {
	// Name identifies the branch inside its network.
	Name() string
	// Kind reports the variant tag.
	Kind() Kind
	// Start is the canonical (lexicographically smaller) endpoint.
	Start() string
	// End is the canonical (lexicographically larger) endpoint.
	End() string
	// SignedDrop returns the potential drop seen when crossing the branch in dir.
	SignedDrop(dir Direction) (float64, error)
}

// Carrier is a Branch whose constitutive law reads a solver-owned flow.
// Resistor and Pipe are Carriers; Source is not.
type Carrier interface {
	Branch
	// Flow returns the signed flow (current) in canonical direction.
	Flow() float64
	// SetFlow stores a signed flow in canonical direction.
	SetFlow(q float64)
}

// DirectionFrom reports the direction in which b is crossed when a traversal
// leaves node from. ok is false when from is not an endpoint of b.
func DirectionFrom(b Branch, from string) (dir Direction, ok bool) {
	switch from {
	case b.Start():
		return Forward, true
	case b.End():
		return Reverse, true
	default:
		return 0, false
	}
}

// Touches reports whether node is an endpoint of b.
func Touches(b Branch, node string) bool {
	return b.Start() == node || b.End() == node
}

// Opposite returns the endpoint of b that is not node.
// The result is meaningless when node is not an endpoint of b.
func Opposite(b Branch, node string) string {
	if b.Start() == node {
		return b.End()
	}

	return b.Start()
}

// Connects reports whether b joins u and v, in either order.
func Connects(b Branch, u, v string) bool {
	return (b.Start() == u && b.End() == v) || (b.Start() == v && b.End() == u)
}

// DefaultName builds the canonical "start-end" name.
func DefaultName(start, end string) string { return start + "-" + end }

// Option configures a branch at construction.
type Option func(*options)

type options struct {
	name       string
	transition TransitionPolicy
	err        error
}

// WithName overrides the default "start-end" branch name.
// Needed when two branches join the same pair of nodes.
func WithName(name string) Option {
	return func(o *options) {
		if name == "" {
			o.err = fmt.Errorf("%w: empty branch name", ErrOptionViolation)
			return
		}
		o.name = name
	}
}

// WithTransition sets the transition-regime policy of a Pipe.
// Ignored by other variants. A nil policy keeps ExpectedValue.
func WithTransition(p TransitionPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.transition = p
		}
	}
}

// endpoints validates and canonicalizes a pair of node names.
// flipped is true when the caller's order was reversed.
func endpoints(from, to string) (start, end string, flipped bool, err error) {
	if from == "" || to == "" {
		return "", "", false, ErrEmptyNode
	}
	if from == to {
		return "", "", false, fmt.Errorf("%w: %q", ErrSelfLoop, from)
	}
	if from > to {
		return to, from, true, nil
	}

	return from, to, false, nil
}

func applyOptions(start, end string, opts []Option) (options, error) {
	o := options{name: DefaultName(start, end), transition: ExpectedValue{}}
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// sign returns -1 for negative q and +1 otherwise (zero counts as positive).
func sign(q float64) float64 {
	if q < 0 {
		return -1
	}

	return 1
}
