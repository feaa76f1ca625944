package blackhole

import (
	"math"
	"testing"
)

func TestSpinClamp(t *testing.T) {
	tests := []struct {
		name string
		mass float64
		spin float64
		want float64
	}{
		{"within range", 1.0, 0.5, 0.5},
		{"over mass", 1.0, 1.5, 1.0},
		{"under negative mass", 1.0, -1.5, -1.0},
		{"extremal", 2.0, 2.0, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bh := New(tt.mass, tt.spin)
			if bh.Spin != tt.want {
				t.Errorf("spin = %f, want %f", bh.Spin, tt.want)
			}
		})
	}
}

func TestSchwarzschildHorizon(t *testing.T) {
	bh := NewSchwarzschild(1.0)

	if math.Abs(bh.OuterHorizon()-2.0) > 1e-6 {
		t.Errorf("outer horizon = %f, want 2.0", bh.OuterHorizon())
	}
	if math.Abs(bh.InnerHorizon()) > 1e-6 {
		t.Errorf("inner horizon = %f, want 0.0", bh.InnerHorizon())
	}
	if bh.SchwarzschildRadius() != 2.0 {
		t.Errorf("schwarzschild radius = %f, want 2.0", bh.SchwarzschildRadius())
	}
}

func TestHorizonOrdering(t *testing.T) {
	for _, spin := range []float64{0.0, 0.3, 0.7, 0.99, 1.0} {
		bh := New(1.0, spin)
		inner, outer := bh.InnerHorizon(), bh.OuterHorizon()

		if inner < 0 || inner > outer {
			t.Errorf("spin %.2f: inner horizon %f outside [0, %f]", spin, inner, outer)
		}
	}
}

func TestErgosphereEnclosesHorizon(t *testing.T) {
	bh := New(1.0, 0.9)
	outer := bh.OuterHorizon()

	for i := 0; i <= 16; i++ {
		theta := float64(i) * math.Pi / 16
		ergo := bh.ErgosphereRadius(theta)
		if ergo < outer-1e-12 {
			t.Errorf("ergosphere at theta=%.3f is %f, inside outer horizon %f", theta, ergo, outer)
		}
	}

	// At the poles the ergosphere touches the horizon.
	if math.Abs(bh.ErgosphereRadius(0)-outer) > 1e-12 {
		t.Errorf("ergosphere at pole = %f, want %f", bh.ErgosphereRadius(0), outer)
	}
}

func TestISCORadius(t *testing.T) {
	bh := NewSchwarzschild(1.0)
	if math.Abs(bh.ISCORadius()-6.0) > 0.1 {
		t.Errorf("schwarzschild ISCO = %f, want ~6.0", bh.ISCORadius())
	}

	// Extremal prograde ISCO reaches M.
	extremal := New(1.0, 1.0)
	if math.Abs(extremal.ISCORadius()-1.0) > 1e-6 {
		t.Errorf("extremal ISCO = %f, want 1.0", extremal.ISCORadius())
	}

	// ISCO shrinks monotonically with prograde spin.
	prev := bh.ISCORadius()
	for _, spin := range []float64{0.2, 0.5, 0.8, 0.98} {
		r := New(1.0, spin).ISCORadius()
		if r >= prev {
			t.Errorf("ISCO not shrinking: spin %.2f gives %f >= %f", spin, r, prev)
		}
		prev = r
	}
}

func TestPhotonSphereRadius(t *testing.T) {
	bh := NewSchwarzschild(1.0)
	if math.Abs(bh.PhotonSphereRadius()-3.0) > 1e-6 {
		t.Errorf("photon sphere = %f, want 3.0", bh.PhotonSphereRadius())
	}

	extremal := New(1.0, 1.0)
	if math.Abs(extremal.PhotonSphereRadius()-1.0) > 1e-6 {
		t.Errorf("extremal photon sphere = %f, want 1.0", extremal.PhotonSphereRadius())
	}
}
