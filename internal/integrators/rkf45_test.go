package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/geotrace/internal/geodesic"
)

func TestRKF45AdaptiveStep(t *testing.T) {
	sys := &harmonicOscillator{}
	ctrl := geodesic.DefaultStepControl()
	integ := NewRKF45(ctrl)

	x0 := geodesic.State{1.0, 0.0}
	x, used, next, err := integ.StepAdaptive(sys, x0, 0, 0.1)

	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if used < ctrl.MinStep || used > ctrl.MaxStep {
		t.Errorf("step used %g outside [%g, %g]", used, ctrl.MinStep, ctrl.MaxStep)
	}
	if next <= 0 {
		t.Errorf("suggested next step = %g, want > 0", next)
	}
}

func TestRKF45Accuracy(t *testing.T) {
	sys := &harmonicOscillator{}
	integ := NewRKF45(geodesic.DefaultStepControl())

	x := geodesic.State{1.0, 0.0}
	lambda := 0.0
	h := 0.05

	for lambda < 10.0 {
		var used float64
		var err error
		x, used, h, err = integ.StepAdaptive(sys, x, lambda, h)
		if err != nil {
			t.Fatalf("step failed at lambda=%.3f: %v", lambda, err)
		}
		lambda += used
	}

	// Compare against the analytic solution at the reached lambda.
	if math.Abs(x[0]-math.Cos(lambda)) > 1e-3 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], math.Cos(lambda))
	}
}

func TestRKF45ClampsRequestedStep(t *testing.T) {
	sys := &harmonicOscillator{}
	ctrl := geodesic.DefaultStepControl()
	ctrl.MaxStep = 0.05
	integ := NewRKF45(ctrl)

	_, used, next, err := integ.StepAdaptive(sys, geodesic.State{1.0, 0.0}, 0, 10.0)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if used > ctrl.MaxStep {
		t.Errorf("step used %g exceeds max %g", used, ctrl.MaxStep)
	}
	if next > ctrl.MaxStep {
		t.Errorf("suggested step %g exceeds max %g", next, ctrl.MaxStep)
	}
}

type nanSystem struct{}

func (n *nanSystem) Dim() int { return 2 }

func (n *nanSystem) Derive(x geodesic.State, lambda float64) geodesic.State {
	return geodesic.State{math.NaN(), math.NaN()}
}

func TestRKF45DivergesOnNaN(t *testing.T) {
	integ := NewRKF45(geodesic.DefaultStepControl())

	_, _, _, err := integ.StepAdaptive(&nanSystem{}, geodesic.State{1.0, 0.0}, 0, 0.1)
	if !errors.Is(err, geodesic.ErrDiverged) {
		t.Errorf("expected ErrDiverged for NaN derivatives, got %v", err)
	}
}

// stiffSystem grows too fast for the tolerance at any step size above
// the minimum.
type stiffSystem struct{}

func (s *stiffSystem) Dim() int { return 1 }

func (s *stiffSystem) Derive(x geodesic.State, lambda float64) geodesic.State {
	return geodesic.State{1e12 * x[0]}
}

func TestRKF45BoundedRetries(t *testing.T) {
	ctrl := geodesic.DefaultStepControl()
	ctrl.MinStep = 1e-3 // keep the floor high so shrinking cannot succeed
	integ := NewRKF45(ctrl)

	_, _, _, err := integ.StepAdaptive(&stiffSystem{}, geodesic.State{1.0}, 0, 0.1)
	if err == nil {
		t.Fatal("expected failure for stiff system with high step floor")
	}
	if !errors.Is(err, geodesic.ErrStepTooSmall) && !errors.Is(err, geodesic.ErrDiverged) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRKF45Determinism(t *testing.T) {
	sys := &harmonicOscillator{}
	x0 := geodesic.State{1.0, 0.0}

	a, usedA, nextA, errA := NewRKF45(geodesic.DefaultStepControl()).StepAdaptive(sys, x0.Clone(), 0, 0.1)
	b, usedB, nextB, errB := NewRKF45(geodesic.DefaultStepControl()).StepAdaptive(sys, x0.Clone(), 0, 0.1)

	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if usedA != usedB || nextA != nextB {
		t.Errorf("step sizes differ: (%v, %v) vs (%v, %v)", usedA, nextA, usedB, nextB)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("component %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
