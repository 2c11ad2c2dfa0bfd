// SPDX-License-Identifier: MIT

package eigen

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvmds/rng"
)

// Defaults (single source of truth).
const (
	// DefaultMaxIter caps the number of power-iteration steps.
	DefaultMaxIter = 1000

	// DefaultMinIter is the number of steps taken before convergence may be declared.
	DefaultMinIter = 3

	// DefaultTolerance is the eigenvalue change below which iteration stops.
	DefaultTolerance = 1e-12
)

const (
	panicMaxIter   = "eigen: WithMaxIter: n must be > 0"
	panicMinIter   = "eigen: WithMinIter: n must be >= 1"
	panicTolerance = "eigen: WithTolerance: tol must be finite, non-negative"
	panicSymmetry  = "eigen: WithSymmetryCheck: tol must be finite, non-negative"
)

// Option mutates Options.
type Option func(*Options)

// Options holds the resolved solver configuration.
type Options struct {
	maxIter     int
	minIter     int
	tol         float64
	seed        int64
	rnd         *rand.Rand
	checkSym    bool
	symTol      float64
	requireConv bool
}

// WithMaxIter sets the iteration cap. Panics when n <= 0.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIter)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithMinIter sets the minimum iterations before convergence may be declared.
func WithMinIter(n int) Option {
	if n < 1 {
		panic(panicMinIter)
	}

	return func(o *Options) { o.minIter = n }
}

// WithTolerance sets the eigenvalue-change stopping threshold.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolerance)
	}

	return func(o *Options) { o.tol = tol }
}

// WithSeed seeds a private generator for the start vector (0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed; o.rnd = nil }
}

// WithRand injects the generator for start vectors. The solver consumes it
// from a single goroutine; do not share it with concurrent users.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.rnd = r }
}

// WithSymmetryCheck validates |A[i,j]-A[j,i]| ≤ tol before iterating.
func WithSymmetryCheck(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymmetry)
	}

	return func(o *Options) { o.checkSym = true; o.symTol = tol }
}

// WithRequireConvergence makes hitting the iteration cap an ErrNotConverged error.
func WithRequireConvergence() Option {
	return func(o *Options) { o.requireConv = true }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		maxIter: DefaultMaxIter,
		minIter: DefaultMinIter,
		tol:     DefaultTolerance,
	}
	for _, set := range user {
		set(&o)
	}
	if o.rnd == nil {
		o.rnd = rng.FromSeed(o.seed)
	}

	return o
}
