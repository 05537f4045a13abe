// Package lvnet solves steady-state flow networks: resistor/source circuits
// and pipe networks share one machinery built on the two conservation laws.
//
// 🚀 What is lvnet?
//
//	A small, thread-aware library and CLI that brings together:
//		• Branch elements: Resistor (ΔV = I·R), Pipe (Darcy–Weisbach with a
//		  laminar / transition / Colebrook friction model), Source (fixed drop)
//		• Topology: nodes derived from branch endpoints, series chains,
//		  fundamental cycle basis
//		• Solver: damped Newton on node continuity + loop law residuals,
//		  finite-difference Jacobian, partial-pivot LU
//		• Outer surfaces: YAML descriptions, text reports, convergence charts
//
// Everything is organized into flat subpackages:
//
//	fluid/      density / viscosity descriptor (Water by default)
//	element/    Branch variants and the friction model
//	topology/   multigraph of junctions, BFS spanning tree, cycle basis
//	matrix/     dense matrix and LU factorization
//	network/    Node, Loop, Network, Layout, Solve, Result
//	netfile/    YAML network description
//	report/     text tables and convergence chart
//	cmd/lvnet/  command line front end
//
// Quick ASCII example (two sources, four resistors):
//
//	  a ─(32 V)─ b
//	  │          │
//	 20 Ω       20 Ω
//	  │          │
//	  d ──10 Ω── c
//	  │          │
//	(16 V)      5 Ω
//	  │          │
//	  e ─────────┘
//
// Nodes a, b and e lie inside series chains, so only three chain currents are
// unknown: one continuity equation at c plus two loop equations.
//
//	go install github.com/katalvlaran/lvnet/cmd/lvnet@latest
package lvnet
