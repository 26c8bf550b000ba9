package kleinbottle_test

import (
	"fmt"

	"github.com/katalvlaran/riemann/kleinbottle"
	"github.com/katalvlaran/riemann/tensor"
)

// ExampleKleinBottle_Regularize demonstrates canonicalization: crossing the
// glued x-edge once mirrors the y-coordinate.
//
// Complexity: O(batch) time, O(batch) memory.
func ExampleKleinBottle_Regularize() {
	kb := kleinbottle.New()

	p, _ := tensor.FromSlice([]float64{1.5, 0.3}, 2)
	canonical, _ := kb.Regularize(p)

	d := canonical.Data()
	fmt.Printf("(%.1f, %.1f)\n", d[0], d[1])
	// Output:
	// (0.5, 0.7)
}

// ExampleMetric_Log demonstrates the quotient-aware logarithm: the shortest
// path from (0.1, 0.5) to (0.9, 0.5) leaves through the glued edge instead
// of crossing the square.
func ExampleMetric_Log() {
	kb := kleinbottle.New()
	m := kb.Metric()

	base, _ := tensor.FromSlice([]float64{0.1, 0.5}, 2)
	p, _ := tensor.FromSlice([]float64{0.9, 0.5}, 2)

	log, _ := m.Log(p, base)
	dist, _ := m.Dist(p, base)
	v, _ := dist.Item()

	fmt.Printf("log=(%.1f, %.1f) dist=%.1f\n", log.Data()[0], log.Data()[1], v)
	// Output:
	// log=(-0.2, 0.0) dist=0.2
}
