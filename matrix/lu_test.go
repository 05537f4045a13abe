// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvnet/matrix"
	"github.com/stretchr/testify/require"
)

func TestSolve_NeedsPivoting(t *testing.T) {
	t.Parallel()

	// Zero leading pivot: unpivoted Doolittle would fail here.
	a, err := matrix.NewFromRows([][]float64{
		{0, 1, 1},
		{2, 0, -1},
		{1, 3, 0},
	})
	require.NoError(t, err)
	want := []float64{1, -2, 3}
	b, err := matrix.MatVec(a, want)
	require.NoError(t, err)

	x, err := matrix.Solve(a, b)
	require.NoError(t, err)
	require.InDeltaSlice(t, want, x, 1e-12)
}

func TestFactorize_ReuseForSeveralRHS(t *testing.T) {
	t.Parallel()

	a, err := matrix.NewFromRows([][]float64{
		{4, -2, 1},
		{-2, 4, -2},
		{1, -2, 4},
	})
	require.NoError(t, err)
	lu, err := matrix.Factorize(a)
	require.NoError(t, err)

	for _, want := range [][]float64{{1, 0, 0}, {0.5, -1, 2}, {-3, 3, 7}} {
		b, err := matrix.MatVec(a, want)
		require.NoError(t, err)
		x, err := lu.Solve(b)
		require.NoError(t, err)
		require.InDeltaSlice(t, want, x, 1e-12)
	}

	_, err = lu.Solve([]float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestFactorize_Errors(t *testing.T) {
	t.Parallel()

	singular, err := matrix.NewFromRows([][]float64{
		{1, 2},
		{2, 4},
	})
	require.NoError(t, err)
	_, err = matrix.Factorize(singular)
	require.ErrorIs(t, err, matrix.ErrSingular)

	zero, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_, err = matrix.Factorize(zero)
	require.ErrorIs(t, err, matrix.ErrSingular)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.Factorize(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.Factorize(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
