// Package metrics provides per-ray diagnostics implementing
// [geodesic.Metric]. Attach them to a ray session to accumulate values
// over the life of a trace.
package metrics

import (
	"math"

	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/geodesic"
	"github.com/san-kum/geotrace/internal/metric"
)

// ClosestApproach tracks the minimum radial coordinate seen along a ray.
type ClosestApproach struct {
	min     float64
	samples int
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{min: math.Inf(1)}
}

func (c *ClosestApproach) Name() string { return "closest_approach" }

func (c *ClosestApproach) Observe(x geodesic.State, lambda float64) {
	if r := x.Radius(); r < c.min {
		c.min = r
	}
	c.samples++
}

func (c *ClosestApproach) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.min
}

func (c *ClosestApproach) Reset() {
	c.min = math.Inf(1)
	c.samples = 0
}

// EnergyDrift tracks how far -p_t wanders from its initial value. The
// approximate Schwarzschild model does not conserve it exactly, so the
// drift is a cheap integration-quality signal.
type EnergyDrift struct {
	initial float64
	max     float64
	primed  bool
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x geodesic.State, lambda float64) {
	energy := -x[geodesic.PT]
	if !e.primed {
		e.initial = energy
		e.primed = true
		return
	}
	if d := math.Abs(energy - e.initial); d > e.max {
		e.max = d
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.primed = false
}

// NullResidual evaluates |g_uv p^u p^v| with the full metric tensor. A
// photon on an exact null geodesic keeps this at zero; the unnormalized
// initial momentum and the approximate Schwarzschild derivative both show
// up here as a nonzero residual.
type NullResidual struct {
	bh      blackhole.BlackHole
	max     float64
	samples int
}

func NewNullResidual(bh blackhole.BlackHole) *NullResidual {
	return &NullResidual{bh: bh}
}

func (n *NullResidual) Name() string { return "null_residual" }

func (n *NullResidual) Observe(x geodesic.State, lambda float64) {
	g := metric.Components(x[geodesic.R], x[geodesic.Theta], n.bh)

	sum := 0.0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum += g[i][j] * x[4+i] * x[4+j]
		}
	}

	if r := math.Abs(sum); r > n.max {
		n.max = r
	}
	n.samples++
}

func (n *NullResidual) Value() float64 { return n.max }

func (n *NullResidual) Reset() {
	n.max = 0
	n.samples = 0
}
