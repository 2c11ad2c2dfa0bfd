// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvmds/matrix"
)

var (
	// ErrNotConverged is returned under WithRequireConvergence when the
	// iteration cap is reached before the tolerance.
	ErrNotConverged = errors.New("eigen: power iteration did not converge")

	// ErrRank is returned by TopK when k is outside [1, n].
	ErrRank = errors.New("eigen: requested eigenpair count out of range")
)

const (
	opPowerIterate = "PowerIterate"
	opDeflate      = "HotellingDeflate"
	opTopK         = "TopK"
)

// Pair is an eigenvalue with its unit eigenvector.
type Pair struct {
	Value  float64
	Vector []float64
}

// Result is a Pair plus the iteration diagnostics.
type Result struct {
	Pair
	Iterations int     // steps performed
	Converged  bool    // true when the tolerance, not the cap, stopped the loop
	Delta      float64 // last |Δλ|
}

// PowerIterate returns the dominant eigenpair of the square matrix m.
//
// Implementation:
//   - Stage 1 (Validate): m non-nil and square; optional symmetry check.
//   - Stage 2 (Prepare): random start vector from the injected RNG, L2-normalised.
//   - Stage 3 (Execute): y = A·v; λ = ±‖y‖ (sign of the Rayleigh quotient vᵀAv);
//     v = y/‖y‖; stop at MaxIter or when iter ≥ MinIter and |Δλ| < Tol.
//
// Behavior highlights:
//   - A zero product (zero or nilpotent matrix) ends the loop with λ=0 and the
//     current vector, reported as converged.
//   - m is never mutated.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrAsymmetry (with
//     WithSymmetryCheck), matrix.ErrNaNInf (non-finite products),
//     ErrNotConverged (with WithRequireConvergence; the Result is still filled).
//
// Complexity:
//   - Time O(iter·n²), Space O(n).
func PowerIterate(m matrix.Matrix, opts ...Option) (Result, error) {
	o := gatherOptions(opts...)

	return powerIterate(m, o)
}

func powerIterate(m matrix.Matrix, o Options) (Result, error) {
	// Stage 1 (Validate).
	if err := matrix.ValidateSquare(m); err != nil {
		return Result{}, fmt.Errorf("%s: %w", opPowerIterate, err)
	}
	if o.checkSym {
		if err := matrix.ValidateSymmetric(m, o.symTol); err != nil {
			return Result{}, fmt.Errorf("%s: %w", opPowerIterate, err)
		}
	}

	// Stage 2 (Prepare): two buffers swapped every iteration.
	n := m.Rows()
	v := make([]float64, n)
	y := make([]float64, n)
	for i := range v {
		v[i] = o.rnd.NormFloat64()
	}
	if nrm, _ := matrix.Normalize(v); nrm == 0 {
		v[0] = 1 // astronomically unlikely; keep the vector a unit one
	}

	// Stage 3 (Execute).
	var (
		res   Result
		prev  float64
		value float64
		nrm   float64
		err   error
	)
	for res.Iterations < o.maxIter {
		res.Iterations++
		if err = matrix.MatVecInto(m, v, y); err != nil {
			return Result{}, fmt.Errorf("%s: %w", opPowerIterate, err)
		}
		rayleigh := matrix.Dot(v, y)
		if nrm, err = matrix.Normalize(y); err != nil {
			return Result{}, fmt.Errorf("%s: iteration %d: %w", opPowerIterate, res.Iterations, err)
		}
		if nrm == 0 {
			value = 0
			res.Delta = math.Abs(prev)
			res.Converged = true
			break
		}
		value = nrm
		if rayleigh < 0 {
			value = -nrm
		}
		v, y = y, v

		res.Delta = math.Abs(value - prev)
		prev = value
		if res.Iterations >= o.minIter && res.Delta < o.tol {
			res.Converged = true
			break
		}
	}

	res.Value = value
	res.Vector = v
	if o.requireConv && !res.Converged {
		return res, fmt.Errorf("%s: %d iterations, |Δλ|=%g: %w", opPowerIterate, res.Iterations, res.Delta, ErrNotConverged)
	}

	return res, nil
}

// HotellingDeflate subtracts pair.Value·v·vᵀ from m in place, so the next
// PowerIterate on m yields the following eigenpair of the original matrix.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrDimensionMismatch,
// matrix.ErrNaNInf (non-finite eigenvalue).
//
// Complexity: O(n²).
func HotellingDeflate(m matrix.Matrix, pair Pair) error {
	if err := matrix.SubScaledOuter(m, pair.Value, pair.Vector); err != nil {
		return fmt.Errorf("%s: %w", opDeflate, err)
	}

	return nil
}

// TopK returns the k leading eigenpairs of m by alternating PowerIterate and
// HotellingDeflate on a private copy; m is not mutated. All rounds share one
// random stream, so a seed fixes the whole sequence.
//
// Errors: ErrRank for k outside [1, n], plus PowerIterate errors.
//
// Complexity: O(k·iter·n²) time, O(n²) space for the copy.
func TopK(m matrix.Matrix, k int, opts ...Option) ([]Result, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opTopK, err)
	}
	if k < 1 || k > m.Rows() {
		return nil, fmt.Errorf("%s: k=%d n=%d: %w", opTopK, k, m.Rows(), ErrRank)
	}
	o := gatherOptions(opts...)

	work := m.Clone()
	out := make([]Result, 0, k)
	for r := 0; r < k; r++ {
		res, err := powerIterate(work, o)
		if err != nil {
			return out, fmt.Errorf("%s: pair %d: %w", opTopK, r, err)
		}
		out = append(out, res)
		if r == k-1 {
			break
		}
		if err = HotellingDeflate(work, res.Pair); err != nil {
			return out, fmt.Errorf("%s: pair %d: %w", opTopK, r, err)
		}
	}

	return out, nil
}
