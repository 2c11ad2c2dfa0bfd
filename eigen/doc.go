// Package eigen extracts dominant eigenpairs of real symmetric matrices by
// power iteration and exposes further eigenpairs through Hotelling deflation.
//
// PowerIterate starts from a random unit vector drawn from an injected
// *rand.Rand, repeatedly multiplies and renormalises, and stops either at
// MaxIter (1000) or, after at least MinIter (3) iterations, when the change of
// the eigenvalue estimate drops below Tolerance (1e-12). The returned Result
// says which of the two happened through Converged.
//
// HotellingDeflate subtracts λ·v·vᵀ in place, so that a second PowerIterate
// yields the next eigenpair (by magnitude) of the original matrix. TopK
// composes both on a private copy.
//
// Preconditions (symmetric input with a real, well-separated dominant
// eigenvalue) are a caller contract; WithSymmetryCheck turns the symmetry part
// into an explicit validation.
package eigen
