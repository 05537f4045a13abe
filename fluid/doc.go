// SPDX-License-Identifier: MIT

// Package fluid describes the working fluid carried by pipe branches.
//
// A Fluid is an immutable pair of bulk properties:
//
//	Density   ρ [kg/m³]
//	Viscosity μ [Pa·s] (dynamic)
//
// One Fluid value is shared by reference across every Pipe of a network;
// nothing in lvnet mutates it after construction.
//
//	water := fluid.Water()              // ρ=1000, μ=0.00089
//	oil, err := fluid.New(870, 0.0386)  // validated constructor
package fluid
