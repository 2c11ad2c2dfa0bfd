// Package matrix offers the dense linear-algebra primitives behind the
// classical and iterative MDS engines.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set, no-copy Row
//     views, O(1) Swap for double buffering and a configurable NaN/Inf policy.
//   - Kernels: MatVecInto, SubScaledOuter (rank-1 update used by Hotelling deflation),
//     vector Dot/Norm2/Normalize.
//   - Statistics: SquaredMeans, DoubleCenterSquared (Gower centring), ColumnBounds.
//   - Validators: ValidateNotNil, ValidateSquare, ValidateSymmetric, ValidateFinite.
//
// All user-triggered failures are reported through the sentinel errors in
// errors.go; callers match them with errors.Is.
package matrix
