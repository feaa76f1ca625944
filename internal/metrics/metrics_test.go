package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/geodesic"
)

func TestClosestApproach(t *testing.T) {
	m := NewClosestApproach()

	for _, r := range []float64{10, 6, 3.5, 4, 8} {
		m.Observe(geodesic.State{0, r, math.Pi / 2, 0, 1, 0, 0, 0}, 0)
	}

	if m.Value() != 3.5 {
		t.Errorf("closest approach = %f, want 3.5", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset = %f, want 0", m.Value())
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()

	m.Observe(geodesic.State{0, 10, 1, 0, -1.0, 0, 0, 0}, 0)
	m.Observe(geodesic.State{0, 9, 1, 0, -1.0, 0, 0, 0}, 1)
	if m.Value() != 0 {
		t.Errorf("drift = %f, want 0 for constant p_t", m.Value())
	}

	m.Observe(geodesic.State{0, 8, 1, 0, -1.25, 0, 0, 0}, 2)
	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("drift = %f, want 0.25", m.Value())
	}
}

func TestNullResidualZeroForNullMomentum(t *testing.T) {
	bh := blackhole.NewSchwarzschild(1.0)
	m := NewNullResidual(bh)

	// Radial null ray at r=4: g_tt = -0.5, g_rr = 2. Choosing p_t = 1,
	// p_r = 0.5 gives g_tt p_t^2 + g_rr p_r^2 = 0.
	m.Observe(geodesic.State{0, 4, math.Pi / 2, 0, 1, 0.5, 0, 0}, 0)

	if m.Value() > 1e-12 {
		t.Errorf("null residual = %g, want 0 for a null momentum", m.Value())
	}
}

func TestNullResidualNonzeroForRawMomentum(t *testing.T) {
	bh := blackhole.NewSchwarzschild(1.0)
	m := NewNullResidual(bh)

	// The raw camera momentum (1, 0, 0, -1) is not null.
	m.Observe(geodesic.State{0, 5, math.Pi / 2, 0, 1, 0, 0, -1}, 0)

	if m.Value() == 0 {
		t.Error("expected nonzero residual for unnormalized camera momentum")
	}
}
