// SPDX-License-Identifier: MIT

package classical_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmds/classical"
	"github.com/katalvlaran/lvmds/distance"
	"github.com/katalvlaran/lvmds/eigen"
	"github.com/katalvlaran/lvmds/matrix"
	"github.com/stretchr/testify/require"
)

// planar is an anisotropic point set; its x spread dominates y so the two
// eigenvalues of the centred Gram matrix are well separated.
var planar = [][]float64{
	{0, 0}, {10, 1}, {3, 0.5}, {7, 2}, {5, 1.5}, {1, 1.8}, {8, 0.2},
}

func euclid(t *testing.T, pts [][]float64) *matrix.Dense {
	t.Helper()
	src, err := distance.NewPoints(pts)
	require.NoError(t, err)
	d, err := distance.Materialize(src)
	require.NoError(t, err)

	return d
}

func dist2(a, b []float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// TestScale_RoundTrip reconstructs all pairwise distances of a planar set.
func TestScale_RoundTrip(t *testing.T) {
	d := euclid(t, planar)
	before := d.String()

	res, err := classical.Scale(d, classical.WithSeed(17))
	require.NoError(t, err)
	require.True(t, res.Converged())
	require.Equal(t, len(planar), res.Len())
	require.Equal(t, 2, res.Dim())
	require.Equal(t, before, d.String(), "input must not be mutated")

	coords := res.Coordinates()
	for i := range planar {
		for j := range planar {
			want, _ := d.At(i, j)
			require.InDeltaf(t, want, dist2(coords[i], coords[j]), 1e-4, "pair (%d,%d)", i, j)
		}
	}

	l0, err := res.Eigenvalue(0)
	require.NoError(t, err)
	l1, err := res.Eigenvalue(1)
	require.NoError(t, err)
	require.Greater(t, l0, l1)
	require.Greater(t, l1, 0.0)

	v0, err := res.Eigenvector(0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, matrix.Norm2(v0), 1e-9)
}

// TestScale_EigenIndexValidated rejects indices other than 0 and 1.
func TestScale_EigenIndexValidated(t *testing.T) {
	res, err := classical.Scale(euclid(t, planar))
	require.NoError(t, err)

	for _, n := range []int{-1, 2, 7} {
		_, err = res.Eigenvalue(n)
		require.ErrorIs(t, err, classical.ErrEigenIndex)
		_, err = res.Eigenvector(n)
		require.ErrorIs(t, err, classical.ErrEigenIndex)
	}

	_, err = res.Position(len(planar))
	require.ErrorIs(t, err, classical.ErrIndex)
	p, err := res.Position(0)
	require.NoError(t, err)
	p[0] = 1e9
	q, _ := res.Position(0)
	require.NotEqual(t, 1e9, q[0], "Position must return a copy")
}

func TestScale_InputValidation(t *testing.T) {
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = classical.Scale(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	one, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	_, err = classical.Scale(one)
	require.ErrorIs(t, err, classical.ErrTooFewElements)

	asym, err := matrix.NewFromRows([][]float64{{0, 1, 2}, {1, 0, 1}, {2.5, 1, 0}})
	require.NoError(t, err)
	_, err = classical.Scale(asym)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
	_, err = classical.Scale(asym, classical.WithEpsilon(1))
	require.NoError(t, err)

	inf := distance.Func(3, func(i, j int) float64 {
		if i == j {
			return 0
		}
		return math.Inf(1)
	})
	_, err = classical.ScaleSource(inf)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestScale_RequireConvergence(t *testing.T) {
	_, err := classical.Scale(euclid(t, planar),
		classical.WithEigenOptions(eigen.WithMaxIter(1)),
		classical.WithRequireConvergence(),
	)
	require.ErrorIs(t, err, eigen.ErrNotConverged)

	res, err := classical.Scale(euclid(t, planar), classical.WithEigenOptions(eigen.WithMaxIter(1)))
	require.NoError(t, err)
	require.False(t, res.Converged())
}

func TestScale_SeedDeterminism(t *testing.T) {
	a, err := classical.Scale(euclid(t, planar), classical.WithSeed(3))
	require.NoError(t, err)
	b, err := classical.Scale(euclid(t, planar), classical.WithSeed(3))
	require.NoError(t, err)
	require.Equal(t, a.Coordinates(), b.Coordinates())
}

// TestScale_TwoElements covers the smallest legal input (rank-1 Gram matrix).
func TestScale_TwoElements(t *testing.T) {
	d, err := matrix.NewFromRows([][]float64{{0, 3}, {3, 0}})
	require.NoError(t, err)

	res, err := classical.Scale(d, classical.WithSeed(1))
	require.NoError(t, err)
	c := res.Coordinates()
	require.InDelta(t, 3.0, dist2(c[0], c[1]), 1e-6)
}
