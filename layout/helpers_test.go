// SPDX-License-Identifier: MIT

package layout_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvmds/distance"
	"github.com/katalvlaran/lvmds/layout"
	"github.com/stretchr/testify/require"
)

var allModes = []layout.Mode{
	layout.Exhaustive,
	layout.ExhaustiveVelocity,
	layout.StochasticVelocity,
	layout.StochasticVelocityAnnealing,
}

// unitSquare is the four corners of the unit square.
func unitSquare(t testing.TB) distance.Source {
	t.Helper()
	src, err := distance.NewPoints([][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	require.NoError(t, err)

	return src
}

// randomCloud returns n seeded points in [0,10)^dim.
func randomCloud(t testing.TB, n, dim int, seed int64) distance.Source {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dim)
		for a := range pts[i] {
			pts[i][a] = 10 * r.Float64()
		}
	}
	src, err := distance.NewPoints(pts)
	require.NoError(t, err)

	return src
}

// mustEngine builds an engine and closes it with the test.
func mustEngine(t testing.TB, src distance.Source, dim int, opts ...layout.Option) *layout.Engine {
	t.Helper()
	e, err := layout.New(src, dim, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, e.Close()) })

	return e
}

// stepDecayed runs steps with weight 1.0 ×0.999 floored at 0.01 and returns
// the last stress and the number of steps taken (stopping below stop).
func stepDecayed(t testing.TB, e *layout.Engine, steps int, stop float64) (float64, int) {
	t.Helper()
	w := 1.0
	var stress float64
	for s := 1; s <= steps; s++ {
		var err error
		stress, err = e.Step(w)
		require.NoError(t, err)
		if stress < stop {
			return stress, s
		}
		w = math.Max(w*0.999, 0.01)
	}

	return stress, steps
}

func euclid(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}

	return math.Sqrt(s)
}
