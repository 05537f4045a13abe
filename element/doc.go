// SPDX-License-Identifier: MIT

// Package element implements the branch variants of a flow network and their
// constitutive laws: how a signed flow through a branch turns into a signed
// potential drop across it.
//
// Variants (tagged by Kind):
//
//	Resistor  ΔV = I·R                       linear, never fails
//	Pipe      hl = f·(L/d)·V²/(2g)           Darcy–Weisbach, regime-dependent f
//	Source    ΔV = value                     fixed, carries no solver state
//
// Canonical direction:
//
//	Every branch stores its endpoints once, ordered so that Start() < End()
//	lexicographically. All signs (flow, drop, source polarity) are relative to
//	that start→end orientation. A Source built "backwards" is flipped together
//	with its value, so NewSource("b","a",5) equals NewSource("a","b",-5).
//
// Source polarity:
//
//	Value is a drop: V(start) − V(end). NewSource("a","b",32) holds a 32 V
//	higher than b, and a loop walked a→b adds +32 to its sum. Input written as
//	rises (V(end) − V(start)) must be negated; otherwise every solved flow
//	keeps its magnitude and comes out with the opposite sign.
//
// Traversal:
//
//	SignedDrop(Forward) is the drop seen walking start→end; SignedDrop(Reverse)
//	is its negation. DirectionFrom resolves the direction from the node a loop
//	traversal leaves.
//
// Friction regimes (Pipe):
//
//	Re ≤ 2000          laminar  f = 64/Re
//	Re ≥ 4000          Colebrook, solved from f = 0.01
//	2000 < Re < 4000   transition: mean of the linear blend between the two;
//	                   the TransitionPolicy decides what is returned. The default
//	                   ExpectedValue returns the mean; NormalSampler draws from
//	                   N(mean, 0.2·mean) using an injected random source.
//
// Units are SI throughout: metres, m³/s, ohms, volts, amperes.
package element
