// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms needed by classical scaling:
//     squared-entry means, Gower double-centring, per-column bounds.
//
// Exposed API:
//   - SquaredMeans(D)        -> (rowMeans, colMeans, grand) // means over D[i][j]^2
//   - DoubleCenterSquared(D) -> B                           // B = -0.5·(D² - colMean - rowMean + grand)
//   - ColumnBounds(X)        -> (mins, maxs)                // per-column extrema
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opSquaredMeans   = "SquaredMeans"
	opDoubleCenter   = "DoubleCenterSquared"
	opColumnBounds   = "ColumnBounds"
	doubleCenterHalf = -0.5
)

// SquaredMeans computes per-row, per-column and grand means of the squared
// entries of D.
//
// Implementation:
//   - Stage 1: validate D non-nil.
//   - Stage 2: accumulate squared sums in one deterministic pass.
//   - Stage 3: divide by counts.
//
// Complexity:
//   - Time O(r*c), Space O(r+c).
func SquaredMeans(D Matrix) (rowMeans, colMeans []float64, grand float64, err error) {
	if err = ValidateNotNil(D); err != nil {
		return nil, nil, 0, matrixErrorf(opSquaredMeans, err)
	}
	r, c := D.Rows(), D.Cols()
	rowMeans = make([]float64, r)
	colMeans = make([]float64, c)

	var (
		i, j int
		v    float64
	)
	if d, ok := D.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				v = d.data[base+j]
				v *= v
				rowMeans[i] += v
				colMeans[j] += v
				grand += v
			}
		}
	} else {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = D.At(i, j); err != nil {
					return nil, nil, 0, matrixErrorf(opSquaredMeans, err)
				}
				v *= v
				rowMeans[i] += v
				colMeans[j] += v
				grand += v
			}
		}
	}

	// Stage 3: sums -> means.
	for i = 0; i < r; i++ {
		rowMeans[i] /= float64(c)
	}
	for j = 0; j < c; j++ {
		colMeans[j] /= float64(r)
	}
	grand /= float64(r * c)

	return rowMeans, colMeans, grand, nil
}

// DoubleCenterSquared returns B with
//
//	B[i][j] = -0.5 * (D[i][j]^2 - colMean[j] - rowMean[i] + grandMean)
//
// where the means are taken over the squared entries of D. D is not mutated.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n^2), Space O(n^2) for B.
func DoubleCenterSquared(D Matrix) (*Dense, error) {
	if err := ValidateSquare(D); err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}
	rowMeans, colMeans, grand, err := SquaredMeans(D)
	if err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}

	n := D.Rows()
	B, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = D.At(i, j); err != nil {
				return nil, matrixErrorf(opDoubleCenter, err)
			}
			B.data[i*n+j] = doubleCenterHalf * (v*v - colMeans[j] - rowMeans[i] + grand)
		}
	}

	return B, nil
}

// ColumnBounds returns the per-column minimum and maximum of X.
// NaN entries are skipped; a column made only of NaN reports NaN bounds.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnBounds(X Matrix) (mins, maxs []float64, err error) {
	if err = ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opColumnBounds, err)
	}
	r, c := X.Rows(), X.Cols()
	mins = make([]float64, c)
	maxs = make([]float64, c)
	for j := 0; j < c; j++ {
		mins[j] = math.Inf(1)
		maxs[j] = math.Inf(-1)
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if d, ok := X.(*Dense); ok {
				v = d.data[i*c+j]
			} else if v, err = X.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opColumnBounds, err)
			}
			if math.IsNaN(v) {
				continue
			}
			if v < mins[j] {
				mins[j] = v
			}
			if v > maxs[j] {
				maxs[j] = v
			}
		}
	}
	for j = 0; j < c; j++ {
		if mins[j] > maxs[j] { // nothing observed
			mins[j], maxs[j] = math.NaN(), math.NaN()
		}
	}

	return mins, maxs, nil
}
