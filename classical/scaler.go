// SPDX-License-Identifier: MIT

package classical

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvmds/distance"
	"github.com/katalvlaran/lvmds/eigen"
	"github.com/katalvlaran/lvmds/matrix"
)

// Dim is the output dimension of classical scaling.
const Dim = 2

var (
	// ErrTooFewElements is returned for matrices smaller than 2×2.
	ErrTooFewElements = errors.New("classical: at least two elements required")

	// ErrEigenIndex is returned by Eigenvalue/Eigenvector for n outside {0, 1}.
	ErrEigenIndex = errors.New("classical: eigen index must be 0 or 1")

	// ErrIndex is returned by Position for an element index out of range.
	ErrIndex = errors.New("classical: element index out of range")
)

const (
	opScale       = "Scale"
	opScaleSource = "ScaleSource"
)

// Result is the outcome of one classical scaling run. It is immutable.
type Result struct {
	pairs  [Dim]eigen.Result
	coords [][]float64
}

// Scale runs classical MDS on the dissimilarity matrix d.
//
// Implementation:
//   - Stage 1 (Validate): square, N ≥ 2, finite, symmetric within eps.
//   - Stage 2 (Centre): B = matrix.DoubleCenterSquared(d).
//   - Stage 3 (Spectrum): two leading eigenpairs of B via eigen.TopK.
//   - Stage 4 (Embed): x_i = (√λ1·v1[i], √λ2·v2[i]); a negative λ (non-Euclidean
//     input) contributes a zero coordinate instead of NaN.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrNaNInf, matrix.ErrAsymmetry,
//     ErrTooFewElements, eigen.ErrNotConverged (WithRequireConvergence).
//
// Complexity:
//   - Time O(iter·n²), Space O(n²).
func Scale(d matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	// Stage 1 (Validate).
	if err := matrix.ValidateSquare(d); err != nil {
		return nil, fmt.Errorf("%s: %w", opScale, err)
	}
	n := d.Rows()
	if n < 2 {
		return nil, fmt.Errorf("%s: n=%d: %w", opScale, n, ErrTooFewElements)
	}
	if err := matrix.ValidateFinite(d); err != nil {
		return nil, fmt.Errorf("%s: %w", opScale, err)
	}
	if err := matrix.ValidateSymmetric(d, o.eps); err != nil {
		return nil, fmt.Errorf("%s: %w", opScale, err)
	}

	// Stage 2 (Centre).
	b, err := matrix.DoubleCenterSquared(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opScale, err)
	}

	// Stage 3 (Spectrum).
	pairs, err := eigen.TopK(b, Dim, o.eigenOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opScale, err)
	}

	// Stage 4 (Embed).
	res := &Result{coords: make([][]float64, n)}
	copy(res.pairs[:], pairs)
	var scale [Dim]float64
	for k := 0; k < Dim; k++ {
		scale[k] = math.Sqrt(math.Max(pairs[k].Value, 0))
	}
	flat := make([]float64, n*Dim)
	for i := 0; i < n; i++ {
		row := flat[i*Dim : (i+1)*Dim : (i+1)*Dim]
		for k := 0; k < Dim; k++ {
			row[k] = scale[k] * pairs[k].Vector[i]
		}
		res.coords[i] = row
	}

	return res, nil
}

// ScaleSource materializes src and runs Scale on it. +Inf distances are
// rejected with matrix.ErrNaNInf.
func ScaleSource(src distance.Source, opts ...Option) (*Result, error) {
	d, err := distance.Materialize(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opScaleSource, err)
	}

	return Scale(d, opts...)
}

// Len returns the number of embedded elements.
func (r *Result) Len() int { return len(r.coords) }

// Dim returns the embedding dimension (always 2).
func (r *Result) Dim() int { return Dim }

// Position returns a copy of element i's coordinates.
func (r *Result) Position(i int) ([]float64, error) {
	if i < 0 || i >= len(r.coords) {
		return nil, fmt.Errorf("Position(%d): %w", i, ErrIndex)
	}

	return append([]float64(nil), r.coords[i]...), nil
}

// Coordinates returns a deep copy of all coordinates, one row per element.
func (r *Result) Coordinates() [][]float64 {
	out := make([][]float64, len(r.coords))
	for i, c := range r.coords {
		out[i] = append([]float64(nil), c...)
	}

	return out
}

// Eigenvalue returns λ(n+1) of the double-centred matrix for n ∈ {0, 1}.
func (r *Result) Eigenvalue(n int) (float64, error) {
	if n < 0 || n >= Dim {
		return 0, fmt.Errorf("Eigenvalue(%d): %w", n, ErrEigenIndex)
	}

	return r.pairs[n].Value, nil
}

// Eigenvector returns a copy of v(n+1) for n ∈ {0, 1}.
func (r *Result) Eigenvector(n int) ([]float64, error) {
	if n < 0 || n >= Dim {
		return nil, fmt.Errorf("Eigenvector(%d): %w", n, ErrEigenIndex)
	}

	return append([]float64(nil), r.pairs[n].Vector...), nil
}

// Converged reports whether both power iterations met the tolerance.
func (r *Result) Converged() bool {
	return r.pairs[0].Converged && r.pairs[1].Converged
}
