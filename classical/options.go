// SPDX-License-Identifier: MIT

package classical

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvmds/eigen"
)

// DefaultEpsilon is the symmetry tolerance applied to the input matrix.
const DefaultEpsilon = 1e-9

const panicEpsilon = "classical: WithEpsilon: eps must be finite, non-negative"

// Option configures Scale.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	eps         float64
	requireConv bool
	eigenOpts   []eigen.Option
}

// WithEpsilon sets the symmetry tolerance for input validation.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilon)
	}

	return func(o *Options) { o.eps = eps }
}

// WithSeed seeds the power-iteration start vectors.
func WithSeed(seed int64) Option {
	return WithEigenOptions(eigen.WithSeed(seed))
}

// WithRand injects the generator used for power-iteration start vectors.
func WithRand(r *rand.Rand) Option {
	return WithEigenOptions(eigen.WithRand(r))
}

// WithRequireConvergence fails Scale with eigen.ErrNotConverged when either
// eigenpair stops at the iteration cap.
func WithRequireConvergence() Option {
	return func(o *Options) { o.requireConv = true }
}

// WithEigenOptions forwards solver options (iteration cap, tolerance, ...).
func WithEigenOptions(opts ...eigen.Option) Option {
	return func(o *Options) { o.eigenOpts = append(o.eigenOpts, opts...) }
}

func gatherOptions(user ...Option) Options {
	o := Options{eps: DefaultEpsilon}
	for _, set := range user {
		set(&o)
	}
	if o.requireConv {
		o.eigenOpts = append(o.eigenOpts, eigen.WithRequireConvergence())
	}

	return o
}
