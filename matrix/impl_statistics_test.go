// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmds/matrix"
	"github.com/stretchr/testify/require"
)

const epsTight = 1e-12

func TestSquaredMeans_SmallAndFallback(t *testing.T) {
	t.Parallel()

	D := NewFilledDense(t, 2, 2, []float64{0, 2, 2, 0})
	rows, cols, grand, err := matrix.SquaredMeans(D)
	require.NoError(t, err)
	sliceClose(t, rows, []float64{2, 2}, 0)
	sliceClose(t, cols, []float64{2, 2}, 0)
	require.Equal(t, 2.0, grand)

	rowsS, colsS, grandS, err := matrix.SquaredMeans(hide{D})
	require.NoError(t, err)
	require.Equal(t, rows, rowsS)
	require.Equal(t, cols, colsS)
	require.Equal(t, grand, grandS)
}

// TestDoubleCenterSquared_GramMatrix checks that centring a Euclidean distance
// matrix recovers the Gram matrix of the centred points.
func TestDoubleCenterSquared_GramMatrix(t *testing.T) {
	t.Parallel()

	pts := [][2]float64{{0, 0}, {2, 0}, {0, 1}, {2, 1}}
	D := euclidDense(t, pts)
	B, err := matrix.DoubleCenterSquared(D)
	require.NoError(t, err)

	// centroid (1, 0.5)
	var i, j int
	for i = 0; i < len(pts); i++ {
		for j = 0; j < len(pts); j++ {
			want := (pts[i][0]-1)*(pts[j][0]-1) + (pts[i][1]-0.5)*(pts[j][1]-0.5)
			require.InDelta(t, want, MustAt(t, B, i, j), 1e-12)
		}
	}

	// rows of B sum to zero
	for i = 0; i < len(pts); i++ {
		row, err := B.Row(i)
		require.NoError(t, err)
		var s float64
		for _, v := range row {
			s += v
		}
		require.LessOrEqual(t, math.Abs(s), epsTight)
	}

	// input untouched
	require.Equal(t, 2.0, MustAt(t, D, 0, 1))

	_, err = matrix.DoubleCenterSquared(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestColumnBounds(t *testing.T) {
	t.Parallel()

	X, err := matrix.NewDenseWithOptions(3, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	vals := []float64{1, -1, math.NaN(), 5, -3, 2}
	for k, v := range vals {
		require.NoError(t, X.Set(k/2, k%2, v))
	}

	mins, maxs, err := matrix.ColumnBounds(X)
	require.NoError(t, err)
	require.Equal(t, []float64{-3, -1}, mins)
	require.Equal(t, []float64{1, 5}, maxs)

	minsS, maxsS, err := matrix.ColumnBounds(hide{X})
	require.NoError(t, err)
	require.Equal(t, mins, minsS)
	require.Equal(t, maxs, maxsS)
}
