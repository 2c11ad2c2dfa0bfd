// SPDX-License-Identifier: MIT

package layout

import (
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvmds/rng"
)

// Defaults (single source of truth).
const (
	// DefaultMode is used when WithMode is not given.
	DefaultMode = Exhaustive

	// DefaultNeighbors is the width K of each stochastic cache.
	DefaultNeighbors = 13

	// DefaultRepulsionDistance replaces +Inf target distances while the pair
	// is closer than it.
	DefaultRepulsionDistance = 1.0

	// MinLowDistance floors the embedded distance before it is used as a divisor.
	MinLowDistance = 0.01

	// VelocityGain and VelocityDamping blend displacement into velocity:
	// v' = VelocityGain·disp + VelocityDamping·v.
	VelocityGain    = 0.2
	VelocityDamping = 0.8

	// AnnealingSpread is the width of the annealing factor range [1, 1+AnnealingSpread).
	AnnealingSpread = 0.8
)

const (
	panicWorkers   = "layout: WithWorkers: n must be > 0"
	panicRepulsion = "layout: WithRepulsionDistance: d must be finite and > 0"
)

// Option mutates Options.
type Option func(*Options)

// Options holds the resolved engine configuration.
type Options struct {
	mode      Mode
	seed      int64
	rnd       *rand.Rand
	workers   int // 0 ⇒ parallel.WorkersFor(N)
	neighbors int
	repulsion float64
	logger    *slog.Logger
	metrics   Collector
}

// WithMode selects the update strategy. Unknown modes are rejected by New.
func WithMode(m Mode) Option {
	return func(o *Options) { o.mode = m }
}

// WithSeed seeds a private generator (0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed; o.rnd = nil }
}

// WithRand injects the engine generator. Worker streams are derived from it
// during New; afterwards the engine consumes it only between steps.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.rnd = r }
}

// WithWorkers overrides the worker-count heuristic. Panics when n <= 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkers)
	}

	return func(o *Options) { o.workers = n }
}

// WithNeighbors sets the cache width K. Values < 1 are rejected by New.
func WithNeighbors(k int) Option {
	return func(o *Options) { o.neighbors = k }
}

// WithRepulsionDistance sets the initial repulsion distance.
func WithRepulsionDistance(d float64) Option {
	if !validRepulsion(d) {
		panic(panicRepulsion)
	}

	return func(o *Options) { o.repulsion = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCollector installs a metrics collector. The default is NoopCollector.
func WithCollector(c Collector) Option {
	return func(o *Options) {
		if c != nil {
			o.metrics = c
		}
	}
}

func validRepulsion(d float64) bool {
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

func gatherOptions(user ...Option) Options {
	o := Options{
		mode:      DefaultMode,
		neighbors: DefaultNeighbors,
		repulsion: DefaultRepulsionDistance,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:   NoopCollector{},
	}
	for _, set := range user {
		set(&o)
	}
	if o.rnd == nil {
		o.rnd = rng.FromSeed(o.seed)
	}

	return o
}
