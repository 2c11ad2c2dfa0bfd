// Package distance defines the pairwise dissimilarity capability consumed by
// the classical and iterative MDS engines, plus a few adapters.
//
// A Source exposes an element count and a symmetric, non-negative distance
// between any two element indices. +Inf is a legal sentinel meaning
// "incomparable"; the iterative engine treats it through its repulsion
// distance, while classical scaling rejects it.
//
// Adapters:
//   - FromMatrix wraps a square matrix.Matrix.
//   - Points computes Euclidean distances over a point cloud.
//   - Func wraps a closure.
//
// Validate checks the caller contract (N ≥ 2, zero self distance, no NaN or
// negatives, symmetry) and Materialize copies any Source into a dense matrix.
package distance
