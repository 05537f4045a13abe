// SPDX-License-Identifier: MIT

// Package network assembles branches into a flow network and solves it for the
// steady state in which both conservation laws hold:
//
//	continuity  at every node, net branch outflow equals external injection
//	loop law    around every closed cycle, the signed potential drops sum to zero
//
// The same machinery serves resistor/source circuits (current, volts) and pipe
// networks (volumetric flow, metres of head).
//
// Building a network:
//
//	net, err := network.New(branches)         // topology builder derives Nodes
//	err = net.SetInjection("a", 0.060)        // external supply (+) or demand (−)
//	err = net.AddLoop(network.NewLoop("A", "a", "b", "c", "d"))
//	err = net.AddLoop(network.LoopFromBranches("B", "c-d", "d-g", "f-g", "c-f"))
//	err = net.DeriveLoops()                   // or: fundamental cycles from a BFS tree
//
// Unknowns and equations are derived from the topology, never hardcoded:
//
//   - A node of degree 2 without injection is interior to a series chain; every
//     branch of a chain carries the same flow, so a chain is one unknown.
//   - Every other node is a junction and contributes one continuity equation,
//     except the reference junction, whose equation is implied by the others.
//   - Every loop contributes one loop equation.
//
// The system must be exactly determined (equations == unknowns); Layout reports
// the mapping and Solve rejects anything else with ErrEquationCount.
//
// Solving:
//
//	res, err := net.Solve(nil,               // nil guess = all zeros
//	    network.WithTolerance(1e-10),
//	    network.WithLogger(logger),
//	    network.WithMetrics(sink))
//
// Solve runs a damped Newton iteration with a forward-difference Jacobian and
// a partially pivoted LU solve. Before every residual evaluation the trial
// vector is written into the branches, so constitutive laws always read
// consistent state. A failed solve restores the branch flows that were present
// before it started and returns a *SolveError; partial state is never
// presented as an answer.
//
// Concurrency: one analysis at a time per Network. Solve and the mutators
// reject overlapping calls with ErrBusy instead of interleaving writes to the
// shared branch state. Use one Network per goroutine for parallel analyses.
package network
