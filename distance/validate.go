// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvmds/matrix"
)

// Validate checks the Source contract:
//   - Count() ≥ 2,
//   - Distance(i,i) == 0,
//   - no NaN and no negative values,
//   - |Distance(i,j) - Distance(j,i)| ≤ tol (two +Inf compare equal).
//
// Complexity: O(n^2) Distance calls.
func Validate(src Source, tol float64) error {
	if src == nil {
		return fmt.Errorf("Validate: %w", ErrTooFewElements)
	}
	n := src.Count()
	if n < 2 {
		return fmt.Errorf("Validate: n=%d: %w", n, ErrTooFewElements)
	}

	var (
		i, j     int
		dij, dji float64
	)
	for i = 0; i < n; i++ {
		if d := src.Distance(i, i); d != 0 {
			return fmt.Errorf("Validate: (%d,%d)=%g: %w", i, i, d, ErrNonZeroSelf)
		}
		for j = i + 1; j < n; j++ {
			dij, dji = src.Distance(i, j), src.Distance(j, i)
			if math.IsNaN(dij) || math.IsNaN(dji) {
				return fmt.Errorf("Validate: (%d,%d): %w", i, j, ErrNaN)
			}
			if dij < 0 || dji < 0 {
				return fmt.Errorf("Validate: (%d,%d): %w", i, j, ErrNegative)
			}
			if dij == dji {
				continue
			}
			if math.Abs(dij-dji) > tol {
				return fmt.Errorf("Validate: (%d,%d)=%g vs %g: %w", i, j, dij, dji, ErrAsymmetric)
			}
		}
	}

	return nil
}

// Materialize copies src into a dense N×N matrix that admits +Inf entries.
//
// Errors: ErrTooFewElements, matrix.ErrNaNInf for NaN or -Inf values.
// Complexity: O(n^2) time and memory.
func Materialize(src Source) (*matrix.Dense, error) {
	if src == nil || src.Count() < 2 {
		return nil, fmt.Errorf("Materialize: %w", ErrTooFewElements)
	}
	n := src.Count()
	m, err := matrix.NewDenseWithOptions(n, n, matrix.WithAllowInfDistances())
	if err != nil {
		return nil, fmt.Errorf("Materialize: %w", err)
	}

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if err = m.Set(i, j, src.Distance(i, j)); err != nil {
				return nil, fmt.Errorf("Materialize: %w", err)
			}
		}
	}

	return m, nil
}
