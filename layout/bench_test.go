// SPDX-License-Identifier: MIT

package layout_test

import (
	"testing"

	"github.com/katalvlaran/lvmds/layout"
)

func benchmarkStep(b *testing.B, mode layout.Mode, n int) {
	e := mustEngine(b, randomCloud(b, n, 8, 1), 2, layout.WithMode(mode), layout.WithSeed(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Step(0.5); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStep_Exhaustive500(b *testing.B) { benchmarkStep(b, layout.Exhaustive, 500) }
func BenchmarkStep_ExhaustiveVelocity500(b *testing.B) {
	benchmarkStep(b, layout.ExhaustiveVelocity, 500)
}
func BenchmarkStep_Stochastic5000(b *testing.B) { benchmarkStep(b, layout.StochasticVelocity, 5000) }
func BenchmarkStep_Annealing5000(b *testing.B) {
	benchmarkStep(b, layout.StochasticVelocityAnnealing, 5000)
}
