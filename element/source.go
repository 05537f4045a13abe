// SPDX-License-Identifier: MIT

package element

import (
	"fmt"
	"math"
)

// Source is a fixed potential difference between its endpoints.
// Value is V(start) − V(end): walking start→end the potential drops by Value.
type Source struct {
	name       string
	start, end string
	value      float64
}

var _ Branch = (*Source)(nil)

// NewSource builds a source whose potential falls by value from "from" to "to".
// When from > to the endpoints are swapped and value negated, so polarity is
// always expressed against the canonical order.
//
// Errors: ErrEmptyNode, ErrSelfLoop, ErrBadValue, ErrOptionViolation.
func NewSource(from, to string, value float64, opts ...Option) (*Source, error) {
	start, end, flipped, err := endpoints(from, to)
	if err != nil {
		return nil, fmt.Errorf("NewSource: %w", err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("NewSource(%s,%s): %w", from, to, ErrBadValue)
	}
	if flipped {
		value = -value
	}
	o, err := applyOptions(start, end, opts)
	if err != nil {
		return nil, fmt.Errorf("NewSource: %w", err)
	}

	return &Source{name: o.name, start: start, end: end, value: value}, nil
}

// Name implements Branch.
func (s *Source) Name() string { return s.name }

// Kind implements Branch.
func (s *Source) Kind() Kind { return KindSource }

// Start implements Branch.
func (s *Source) Start() string { return s.start }

// End implements Branch.
func (s *Source) End() string { return s.end }

// Value returns the canonical-direction value V(start) − V(end).
func (s *Source) Value() float64 { return s.value }

// SignedDrop implements Branch: +Value forward, −Value reverse.
func (s *Source) SignedDrop(dir Direction) (float64, error) {
	return dir.Sign() * s.value, nil
}

// String implements fmt.Stringer.
func (s *Source) String() string {
	return fmt.Sprintf("source %s (%g)", s.name, s.value)
}
