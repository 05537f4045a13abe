// SPDX-License-Identifier: MIT

// Package netfile reads a network description from YAML and turns it into a
// network.Network plus the solver options it asks for.
//
// A description lists branches by kind, optional node injections, loops given
// either by nodes or by branches, and a solver block:
//
//	name: bridge
//	branches:
//	  - {kind: resistor, from: a, to: d, resistance: 20}
//	  - {kind: source,   from: a, to: b, value: 32}
//	  - {kind: pipe,     from: a, to: c, length: 100, diameter: 0.2, roughness: 0.00025}
//	injections: {a: 0.06, d: -0.03}
//	loops:
//	  - {name: "1", nodes: [a, b, c, d]}
//	  - {name: A, branches: [a-b, b-e, d-e, c-d, a-c]}
//	solver:
//	  tolerance: 1e-9
//	  max_iterations: 100
//	  initial_flow: 0.01
//
// All quantities are SI. When no loops are listed, the fundamental cycles of
// the network are used.
package netfile
