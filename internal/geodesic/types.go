package geodesic

import "math"

// State is a flat state vector. Geodesic systems use eight components:
// x[0..3] hold the spacetime position (t, r, theta, phi) and x[4..7] the
// conjugate momenta (pt, pr, ptheta, pphi).
type State []float64

// Indices into an 8-component geodesic state.
const (
	T = iota
	R
	Theta
	Phi
	PT
	PR
	PTheta
	PPhi
)

// Dim is the number of scalar components in a geodesic state.
const Dim = 8

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm over all components.
func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Radius returns the radial coordinate of a geodesic state.
func (s State) Radius() float64 {
	return s[R]
}

// System is a geodesic derivative function: given a state and the affine
// parameter lambda, it returns dX/dlambda.
type System interface {
	Derive(x State, lambda float64) State
	Dim() int
}

type Integrator interface {
	Step(sys System, x State, lambda, h float64) State
}

// AdaptiveIntegrator advances a state with local error control. StepAdaptive
// returns the accepted state, the step actually used, and the suggested size
// for the next step. A non-nil error means the step could not be brought
// within tolerance and the ray should be considered diverged.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, lambda, h float64) (State, float64, float64, error)
}

// Observer is notified after every accepted integration step.
type Observer interface {
	OnStep(x State, lambda float64)
}

// Metric accumulates a scalar diagnostic over the life of a ray.
type Metric interface {
	Name() string
	Observe(x State, lambda float64)
	Value() float64
	Reset()
}

// StepControl bounds adaptive stepping. Shared by every step of a ray and
// never mutated during tracing.
type StepControl struct {
	AbsTol     float64
	RelTol     float64
	MinStep    float64
	MaxStep    float64
	Safety     float64
	MaxRetries int
}

func DefaultStepControl() StepControl {
	return StepControl{
		AbsTol:     1e-6,
		RelTol:     1e-6,
		MinStep:    1e-8,
		MaxStep:    1.0,
		Safety:     0.9,
		MaxRetries: 20,
	}
}
