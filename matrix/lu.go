// SPDX-License-Identifier: MIT

// LU factorization with partial (row) pivoting: P·A = L·U, L unit lower
// triangular, U upper triangular, both packed into one Dense.

package matrix

import "math"

// pivotRelTol is the pivot magnitude, relative to max|A|, below which the
// matrix is declared singular.
const pivotRelTol = 1e-13

// LU holds a packed factorization of a square matrix.
type LU struct {
	n   int
	lu  *Dense // strictly-lower part is L (unit diagonal implied), upper part is U
	piv []int  // row i of PA is row piv[i] of A
}

// Factorize computes P·A = L·U with partial pivoting. A is not modified.
//
// Implementation:
//   - Stage 1: validate a (non-nil, square); clone it as the working buffer.
//   - Stage 2: for each column k pick the row with the largest |a[i,k]|, i ≥ k,
//     swap it into place, then eliminate below the pivot.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular (pivot ≤ pivotRelTol·max|A|).
// Complexity: O(n³) time, O(n²) space.
func Factorize(a *Dense) (*LU, error) {
	if a == nil {
		return nil, matrixErrorf(opFactorize, ErrNilMatrix)
	}
	if a.r != a.c {
		return nil, matrixErrorf(opFactorize, ErrNonSquare)
	}

	n := a.r
	w := a.Clone()
	piv := make([]int, n)
	for i := range piv {
		piv[i] = i
	}
	tol := pivotRelTol * a.MaxAbs()

	var i, j, k, p int
	var best, v, f float64
	d := w.data
	for k = 0; k < n; k++ {
		// Stage 2a: pivot search in column k
		p, best = k, math.Abs(d[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(d[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == 0 || best <= tol {
			return nil, matrixErrorf(opFactorize, ErrSingular)
		}

		// Stage 2b: row swap
		if p != k {
			for j = 0; j < n; j++ {
				d[k*n+j], d[p*n+j] = d[p*n+j], d[k*n+j]
			}
			piv[k], piv[p] = piv[p], piv[k]
		}

		// Stage 2c: elimination
		for i = k + 1; i < n; i++ {
			f = d[i*n+k] / d[k*n+k]
			d[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				d[i*n+j] -= f * d[k*n+j]
			}
		}
	}

	return &LU{n: n, lu: w, piv: piv}, nil
}

// Solve returns x such that A·x = b for the factorized A.
// Errors: ErrDimensionMismatch when len(b) != n.
// Complexity: O(n²).
func (f *LU) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}
	n, d := f.n, f.lu.data
	x := make([]float64, n)

	// Forward substitution on L·y = P·b (unit diagonal)
	var i, k int
	var sum float64
	for i = 0; i < n; i++ {
		sum = b[f.piv[i]]
		for k = 0; k < i; k++ {
			sum -= d[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// Backward substitution on U·x = y
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= d[i*n+k] * x[k]
		}
		x[i] = sum / d[i*n+i]
	}

	return x, nil
}

// Solve factorizes a and solves a·x = b in one call.
func Solve(a *Dense, b []float64) ([]float64, error) {
	f, err := Factorize(a)
	if err != nil {
		return nil, err
	}

	return f.Solve(b)
}
