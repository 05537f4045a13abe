// SPDX-License-Identifier: MIT

// Package report renders a solved network: aligned text tables of branch
// flows, node continuity and loop drops, and a chart of the residual norm
// per Newton iteration.
package report
