// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra kernel used by the
// network solver: a row-major Dense matrix and an LU factorization with
// partial pivoting.
//
// What & Why:
//
//	Each Newton step of the solver solves J·Δx = −R(x) for a square Jacobian
//	J whose size is the number of unknown chain flows (tens at most). A dense
//	O(n³) factorization is the right tool at that scale. Row pivoting is
//	mandatory here: Jacobians assembled from node and loop equations routinely
//	have structural zeros on the diagonal.
//
// Surface:
//
//	NewDense(r, c)        zero matrix, ErrInvalidDimensions on r,c ≤ 0
//	NewFromRows(rows)     copy of a rectangular [][]float64
//	At / Set / SetCol     bounds-checked accessors (ErrOutOfRange, ErrNaNInf)
//	MatVec(m, x)          y = m·x
//	Factorize(a)          PA = LU, ErrSingular when a pivot vanishes
//	(*LU).Solve(b)        x with a·x = b
//	Solve(a, b)           Factorize + Solve in one call
//
// Errors are package sentinels prefixed "matrix: " and wrapped with the
// operation name; match them with errors.Is.
package matrix
