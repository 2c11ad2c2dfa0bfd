// SPDX-License-Identifier: MIT

package eigen_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmds/eigen"
	"github.com/katalvlaran/lvmds/matrix"
	"github.com/stretchr/testify/require"
)

// householderQ returns Q = I - 2uuᵀ with u = (1,1,1)/√3, a symmetric orthogonal matrix.
func householderQ() [3][3]float64 {
	var q [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			q[i][j] = -2.0 / 3.0
			if i == j {
				q[i][j] += 1
			}
		}
	}

	return q
}

// spectral builds A = Q·diag(vals)·Qᵀ; column k of Q is the eigenvector of vals[k].
func spectral(t *testing.T, vals [3]float64) (*matrix.Dense, [3][3]float64) {
	t.Helper()
	q := householderQ()
	a, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += q[i][k] * vals[k] * q[j][k]
			}
			require.NoError(t, a.Set(i, j, s))
		}
	}

	return a, q
}

func column(q [3][3]float64, k int) []float64 {
	return []float64{q[0][k], q[1][k], q[2][k]}
}

// requireSameUpToSign compares two unit vectors allowing a global sign flip.
func requireSameUpToSign(t *testing.T, want, got []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	sign := 1.0
	if matrix.Dot(want, got) < 0 {
		sign = -1.0
	}
	for i := range want {
		require.InDeltaf(t, want[i], sign*got[i], tol, "component %d", i)
	}
}

func TestPowerIterate_DominantPair(t *testing.T) {
	a, q := spectral(t, [3]float64{10, 2, 0.1})

	res, err := eigen.PowerIterate(a, eigen.WithSeed(11), eigen.WithSymmetryCheck(1e-12))
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.GreaterOrEqual(t, res.Iterations, eigen.DefaultMinIter)
	require.Less(t, res.Iterations, eigen.DefaultMaxIter)
	require.InDelta(t, 10.0, res.Value, 1e-6)
	requireSameUpToSign(t, column(q, 0), res.Vector, 1e-6)
	require.InDelta(t, 1.0, matrix.Norm2(res.Vector), 1e-12)
}

func TestHotellingDeflate_ExposesSecondPair(t *testing.T) {
	a, q := spectral(t, [3]float64{10, 2, 0.1})
	work := a.Clone()

	first, err := eigen.PowerIterate(work, eigen.WithSeed(5))
	require.NoError(t, err)
	require.NoError(t, eigen.HotellingDeflate(work, first.Pair))

	second, err := eigen.PowerIterate(work, eigen.WithSeed(6))
	require.NoError(t, err)
	require.InDelta(t, 2.0, second.Value, 1e-6)
	requireSameUpToSign(t, column(q, 1), second.Vector, 1e-5)

	require.ErrorIs(t, eigen.HotellingDeflate(work, eigen.Pair{Value: 1, Vector: []float64{1}}), matrix.ErrDimensionMismatch)
}

func TestTopK(t *testing.T) {
	a, _ := spectral(t, [3]float64{10, 2, 0.1})
	before := a.String()

	pairs, err := eigen.TopK(a, 3, eigen.WithSeed(1))
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	require.InDelta(t, 10.0, pairs[0].Value, 1e-6)
	require.InDelta(t, 2.0, pairs[1].Value, 1e-6)
	require.InDelta(t, 0.1, pairs[2].Value, 1e-5)
	require.Equal(t, before, a.String(), "TopK must not mutate its input")

	_, err = eigen.TopK(a, 4)
	require.ErrorIs(t, err, eigen.ErrRank)
	_, err = eigen.TopK(a, 0)
	require.ErrorIs(t, err, eigen.ErrRank)
}

func TestPowerIterate_NegativeDominant(t *testing.T) {
	a, err := matrix.NewFromRows([][]float64{{-5, 0}, {0, 1}})
	require.NoError(t, err)

	res, err := eigen.PowerIterate(a, eigen.WithSeed(2))
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.InDelta(t, -5.0, res.Value, 1e-9)
	requireSameUpToSign(t, []float64{1, 0}, res.Vector, 1e-6)
}

func TestPowerIterate_ZeroMatrix(t *testing.T) {
	a, err := matrix.NewDense(3, 3)
	require.NoError(t, err)

	res, err := eigen.PowerIterate(a)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Zero(t, res.Value)
	require.Equal(t, 1, res.Iterations)
}

func TestPowerIterate_CapReportsNonConvergence(t *testing.T) {
	a, _ := spectral(t, [3]float64{10, 2, 0.1})

	res, err := eigen.PowerIterate(a, eigen.WithMaxIter(2))
	require.NoError(t, err)
	require.False(t, res.Converged)
	require.Equal(t, 2, res.Iterations)

	res, err = eigen.PowerIterate(a, eigen.WithMaxIter(2), eigen.WithRequireConvergence())
	require.ErrorIs(t, err, eigen.ErrNotConverged)
	require.Equal(t, 2, res.Iterations)
}

func TestPowerIterate_Validation(t *testing.T) {
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = eigen.PowerIterate(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = eigen.PowerIterate(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	asym, err := matrix.NewFromRows([][]float64{{1, 2}, {0, 1}})
	require.NoError(t, err)
	_, err = eigen.PowerIterate(asym, eigen.WithSymmetryCheck(1e-9))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	require.Panics(t, func() { eigen.WithMaxIter(0) })
	require.Panics(t, func() { eigen.WithTolerance(math.NaN()) })
}

func TestPowerIterate_SeedDeterminism(t *testing.T) {
	a, _ := spectral(t, [3]float64{10, 2, 0.1})

	r1, err := eigen.PowerIterate(a, eigen.WithSeed(99))
	require.NoError(t, err)
	r2, err := eigen.PowerIterate(a, eigen.WithSeed(99))
	require.NoError(t, err)
	require.Equal(t, r1.Vector, r2.Vector)
	require.Equal(t, r1.Iterations, r2.Iterations)
}
