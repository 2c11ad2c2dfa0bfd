// SPDX-License-Identifier: MIT

package layout

import "fmt"

// Mode selects the update strategy. It is fixed for the lifetime of an Engine.
type Mode int

const (
	// Exhaustive uses every other element and applies the displacement directly.
	Exhaustive Mode = iota
	// ExhaustiveVelocity uses every other element and integrates a velocity.
	ExhaustiveVelocity
	// StochasticVelocity uses the near/rand/sample caches and a velocity.
	StochasticVelocity
	// StochasticVelocityAnnealing is StochasticVelocity with a random
	// per-element displacement factor in [1, 1.8) drawn every step.
	StochasticVelocityAnnealing

	modeCount
)

var modeNames = [modeCount]string{
	Exhaustive:                  "exhaustive",
	ExhaustiveVelocity:          "exhaustive-velocity",
	StochasticVelocity:          "stochastic-velocity",
	StochasticVelocityAnnealing: "stochastic-velocity-annealing",
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}

	return modeNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool { return m >= Exhaustive && m < modeCount }

// Velocity reports whether m integrates a per-element velocity.
func (m Mode) Velocity() bool { return m.Valid() && m != Exhaustive }

// Stochastic reports whether m samples its influence set.
func (m Mode) Stochastic() bool {
	return m == StochasticVelocity || m == StochasticVelocityAnnealing
}
