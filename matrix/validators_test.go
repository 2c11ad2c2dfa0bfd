// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmds/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateSymmetric(t *testing.T) {
	sym := NewFilledDense(t, 2, 2, []float64{0, 1, 1, 0})
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))

	asym := NewFilledDense(t, 2, 2, []float64{0, 1, 1.1, 0})
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 1e-9), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, 0.2))

	require.ErrorIs(t, matrix.ValidateSymmetric(MustDense(t, 2, 3), 0), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateSymmetric(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateSymmetric(sym, math.NaN()), matrix.ErrNaNInf)

	inf, err := matrix.NewDenseWithOptions(2, 2, matrix.WithAllowInfDistances())
	require.NoError(t, err)
	require.NoError(t, inf.Set(0, 1, math.Inf(1)))
	require.NoError(t, inf.Set(1, 0, math.Inf(1)))
	require.NoError(t, matrix.ValidateSymmetric(inf, 0))
	require.ErrorIs(t, matrix.ValidateFinite(inf), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFinite(hide{inf}), matrix.ErrNaNInf)
}

func TestValidateNotNil_TypedNil(t *testing.T) {
	var d *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(d), matrix.ErrNilMatrix)
}
