// SPDX-License-Identifier: MIT
// Package matrix: linear-algebra kernels used by the spectral solvers.
//
// Purpose:
//   - MatVecInto: y = A·x into a caller-owned y, with a *Dense fast path.
//   - SubScaledOuter: in-place rank-1 update A -= alpha·v·vᵀ (Hotelling deflation).
//   - Dot / Norm2 / Normalize: vector helpers shared by power iteration.
//
// Notes:
//   - All kernels validate through validators.go and wrap with matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMatVec         = "MatVecInto"
	opSubScaledOuter = "SubScaledOuter"
	opNormalize      = "Normalize"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVecInto computes y = m * x into a caller-owned y (len == Rows()).
// Power iteration reuses two buffers across iterations through it.
//
// Contract: m non-nil; len(x) == m.Cols(); len(y) == m.Rows().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), no allocation.
func MatVecInto(m Matrix, x, y []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(y, m.Rows()); err != nil {
		return matrixErrorf(opMatVec, err)
	}

	return matVecInto(m, x, y)
}

func matVecInto(m Matrix, x, y []float64) error {
	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		y[i] = ZeroSum
		for j = 0; j < m.Cols(); j++ {
			if mv, err = m.At(i, j); err != nil {
				return fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			y[i] += mv * x[j]
		}
	}

	return nil
}

// SubScaledOuter performs the in-place rank-1 update m -= alpha·v·vᵀ.
//
// Implementation:
//   - Stage 1: validate m square and len(v) == n.
//   - Stage 2: Dense fast path over the flat buffer; At/Set fallback otherwise.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrNaNInf (alpha not finite).
//
// Complexity:
//   - Time O(n^2), Space O(1).
func SubScaledOuter(m Matrix, alpha float64, v []float64) error {
	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opSubScaledOuter, err)
	}
	if err := ValidateVecLen(v, m.Rows()); err != nil {
		return matrixErrorf(opSubScaledOuter, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opSubScaledOuter, ErrNaNInf)
	}

	n := m.Rows()
	var i, j int
	if d, ok := m.(*Dense); ok {
		var base int
		var ai float64
		for i = 0; i < n; i++ {
			base = i * n
			ai = alpha * v[i]
			for j = 0; j < n; j++ {
				d.data[base+j] -= ai * v[j]
			}
		}

		return nil
	}

	var aij float64
	var err error
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return matrixErrorf(opSubScaledOuter, err)
			}
			if err = m.Set(i, j, aij-alpha*v[i]*v[j]); err != nil {
				return matrixErrorf(opSubScaledOuter, err)
			}
		}
	}

	return nil
}

// Dot returns Σ a[i]*b[i]. Lengths must match (caller contract; the shorter wins).
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	s := ZeroSum
	for i := 0; i < n; i++ {
		s += a[i] * b[i]
	}

	return s
}

// Norm2 returns the Euclidean length of x.
func Norm2(x []float64) float64 {
	return math.Sqrt(Dot(x, x))
}

// Normalize scales x in place to unit L2 length and returns the original norm.
// A zero vector is left untouched and reported with norm 0 and no error.
func Normalize(x []float64) (float64, error) {
	nrm := Norm2(x)
	if math.IsNaN(nrm) || math.IsInf(nrm, 0) {
		return nrm, matrixErrorf(opNormalize, ErrNaNInf)
	}
	if nrm == 0 {
		return 0, nil
	}
	inv := 1.0 / nrm
	for i := range x {
		x[i] *= inv
	}

	return nrm, nil
}
