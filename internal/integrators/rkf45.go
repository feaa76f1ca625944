package integrators

import (
	"math"

	"github.com/san-kum/geotrace/internal/geodesic"
)

// Runge-Kutta-Fehlberg coefficients (RKF45)
var (
	a2 = 1.0 / 4.0
	a3 = 3.0 / 8.0
	a4 = 12.0 / 13.0
	a6 = 1.0 / 2.0

	b21 = 1.0 / 4.0
	b31 = 3.0 / 32.0
	b32 = 9.0 / 32.0
	b41 = 1932.0 / 2197.0
	b42 = -7200.0 / 2197.0
	b43 = 7296.0 / 2197.0
	b51 = 439.0 / 216.0
	b52 = -8.0
	b53 = 3680.0 / 513.0
	b54 = -845.0 / 4104.0
	b61 = -8.0 / 27.0
	b62 = 2.0
	b63 = -3544.0 / 2565.0
	b64 = 1859.0 / 4104.0
	b65 = -11.0 / 40.0

	// 4th-order solution weights
	c41 = 25.0 / 216.0
	c43 = 1408.0 / 2565.0
	c44 = 2197.0 / 4104.0
	c45 = -1.0 / 5.0

	// 5th-order solution weights
	c51 = 16.0 / 135.0
	c53 = 6656.0 / 12825.0
	c54 = 28561.0 / 56430.0
	c55 = -9.0 / 50.0
	c56 = 2.0 / 55.0
)

// errFloor keeps the acceptance ratio finite when the error estimate is zero.
const errFloor = 1e-14

// RKF45 is the embedded 5th-order Runge-Kutta-Fehlberg integrator with a
// 4th-order error estimate, used by the Kerr model. A rejected step is
// retried with the suggested smaller size, up to StepControl.MaxRetries
// attempts; exhausting the budget or producing a non-finite error estimate
// returns geodesic.ErrDiverged.
type RKF45 struct {
	ctrl geodesic.StepControl
}

func NewRKF45(ctrl geodesic.StepControl) *RKF45 {
	return &RKF45{ctrl: ctrl}
}

// Step advances with error control, discarding the step-size bookkeeping.
// On failure it returns the input state unchanged.
func (r *RKF45) Step(sys geodesic.System, x geodesic.State, lambda, h float64) geodesic.State {
	newX, _, _, err := r.StepAdaptive(sys, x, lambda, h)
	if err != nil {
		return x
	}
	return newX
}

// StepAdaptive returns the accepted state, the step actually used, and the
// suggested size for the next step. The requested step is clamped into
// [MinStep, MaxStep] before use; the local error is the maximum absolute
// difference between the 5th- and 4th-order solutions across all state
// components, compared against AbsTol + RelTol*|x|.
func (r *RKF45) StepAdaptive(sys geodesic.System, x geodesic.State, lambda, h float64) (geodesic.State, float64, float64, error) {
	tol := r.ctrl.AbsTol + r.ctrl.RelTol*x.Norm()

	for attempt := 0; attempt <= r.ctrl.MaxRetries; attempt++ {
		h = clamp(h, r.ctrl.MinStep, r.ctrl.MaxStep)

		y5, errMax := r.stages(sys, x, lambda, h)

		// A non-finite error estimate can never be brought within
		// tolerance by shrinking the step; bail out instead of retrying.
		if math.IsNaN(errMax) || math.IsInf(errMax, 0) {
			return nil, 0, 0, geodesic.ErrDiverged
		}

		ratio := tol / math.Max(errMax, errFloor)
		next := clamp(h*r.ctrl.Safety*math.Pow(ratio, 0.2), r.ctrl.MinStep, r.ctrl.MaxStep)

		if errMax <= tol {
			return y5, h, next, nil
		}

		if h <= r.ctrl.MinStep {
			return nil, 0, 0, geodesic.ErrStepTooSmall
		}
		h = next
	}

	return nil, 0, 0, geodesic.ErrDiverged
}

func (r *RKF45) stages(sys geodesic.System, x geodesic.State, lambda, h float64) (geodesic.State, float64) {
	n := len(x)

	k1 := sys.Derive(x, lambda)

	x2 := make(geodesic.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + h*b21*k1[i]
	}
	k2 := sys.Derive(x2, lambda+a2*h)

	x3 := make(geodesic.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(x3, lambda+a3*h)

	x4 := make(geodesic.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(x4, lambda+a4*h)

	x5 := make(geodesic.State, n)
	for i := 0; i < n; i++ {
		x5[i] = x[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(x5, lambda+h)

	x6 := make(geodesic.State, n)
	for i := 0; i < n; i++ {
		x6[i] = x[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(x6, lambda+a6*h)

	y5 := make(geodesic.State, n)
	errMax := 0.0
	for i := 0; i < n; i++ {
		y4i := x[i] + h*(c41*k1[i]+c43*k3[i]+c44*k4[i]+c45*k5[i])
		y5[i] = x[i] + h*(c51*k1[i]+c53*k3[i]+c54*k4[i]+c55*k5[i]+c56*k6[i])
		errMax = math.Max(errMax, math.Abs(y5[i]-y4i))
	}

	return y5, errMax
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
