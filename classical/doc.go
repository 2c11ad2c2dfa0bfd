// Package classical implements closed-form Classical (Torgerson–Gower)
// multidimensional scaling into two dimensions.
//
// Given a dense symmetric dissimilarity matrix D, Scale squares its entries,
// double-centres them into B = -0.5·(D² - colMean - rowMean + grandMean),
// extracts the two leading eigenpairs of B with eigen.TopK (power iteration
// plus Hotelling deflation) and places element i at
// (√λ1·v1[i], √λ2·v2[i]).
//
// When D is the exact Euclidean distance matrix of a planar point set, the
// pairwise distances of the result reproduce D up to numerical tolerance; the
// coordinates themselves are unique only up to rotation, reflection,
// translation and the sign of each eigenvector.
//
// D is validated (square, symmetric, finite, N ≥ 2) and never mutated.
package classical
