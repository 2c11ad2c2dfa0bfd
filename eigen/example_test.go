package eigen_test

import (
	"fmt"

	"github.com/katalvlaran/lvmds/eigen"
	"github.com/katalvlaran/lvmds/matrix"
)

// ExamplePowerIterate extracts the two eigenpairs of a small symmetric matrix.
func ExamplePowerIterate() {
	a, _ := matrix.NewFromRows([][]float64{
		{4, 0},
		{0, 1},
	})

	first, _ := eigen.PowerIterate(a, eigen.WithSeed(1))
	_ = eigen.HotellingDeflate(a, first.Pair)
	second, _ := eigen.PowerIterate(a, eigen.WithSeed(2))

	fmt.Printf("λ1=%.4f converged=%v\n", first.Value, first.Converged)
	fmt.Printf("λ2=%.4f\n", second.Value)
	// Output:
	// λ1=4.0000 converged=true
	// λ2=1.0000
}
