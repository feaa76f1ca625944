// Package ray drives one photon through curved spacetime: it owns the
// ray-local state, selects the geodesic model and stepper from the black
// hole's spin, and classifies termination.
package ray

import (
	"math"

	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/geodesic"
	"github.com/san-kum/geotrace/internal/integrators"
	"github.com/san-kum/geotrace/internal/physics"
)

// Status is the session state. Tracing is the only non-terminal state;
// escape is not a state but a condition the caller polls via HasEscaped.
type Status int

const (
	StatusTracing Status = iota
	StatusCaptured
	StatusMaxSteps
	StatusDiverged
)

func (s Status) String() string {
	switch s {
	case StatusTracing:
		return "tracing"
	case StatusCaptured:
		return "captured"
	case StatusMaxSteps:
		return "max_steps"
	case StatusDiverged:
		return "diverged"
	}
	return "unknown"
}

// escapeRadiusFactor times the mass is the radius beyond which a ray is
// considered to have left the gravitational field.
const escapeRadiusFactor = 100.0

// Config holds the per-ray integration parameters.
type Config struct {
	Step     geodesic.StepControl
	Initial  float64 // initial step size
	MaxSteps int
}

func DefaultConfig() Config {
	return Config{
		Step:     geodesic.DefaultStepControl(),
		Initial:  0.01,
		MaxSteps: 10000,
	}
}

// Session traces a single photon. Not safe for concurrent use; rays are
// independent, so trace many by giving each its own Session.
type Session struct {
	bh  blackhole.BlackHole
	cfg Config

	state  geodesic.State
	lambda float64
	h      float64
	steps  int
	status Status

	sys           geodesic.System
	fixed         *integrators.RK4
	adaptive      *integrators.RKF45
	captureRadius float64

	observers []geodesic.Observer
	metrics   []geodesic.Metric
}

// New builds a session from a camera-space origin and direction. The origin
// is converted to spherical spacetime coordinates; the momentum is taken
// from the raw, unnormalized direction vector and is not projected onto the
// null-geodesic constraint. Zero spin selects the approximate Schwarzschild
// model with fixed-step RK4 and a capture radius of 2M; any other spin
// selects the Kerr model with adaptive RKF45 and the outer horizon.
func New(origin, dir [3]float64, bh blackhole.BlackHole, cfg Config) *Session {
	r := math.Sqrt(origin[0]*origin[0] + origin[1]*origin[1] + origin[2]*origin[2])
	theta := math.Acos(origin[2] / r)
	phi := math.Atan2(origin[1], origin[0])

	state := geodesic.State{0, r, theta, phi, 1, dir[0], dir[1], dir[2]}

	s := &Session{
		bh:     bh,
		cfg:    cfg,
		state:  state,
		h:      cfg.Initial,
		status: StatusTracing,
	}

	if bh.Spin == 0 {
		s.sys = physics.NewSchwarzschild(bh)
		s.fixed = integrators.NewRK4()
		s.captureRadius = 2 * bh.Mass
	} else {
		s.sys = physics.NewKerr(bh, state)
		s.adaptive = integrators.NewRKF45(cfg.Step)
		s.captureRadius = bh.OuterHorizon()
	}

	return s
}

func (s *Session) AddObserver(o geodesic.Observer) { s.observers = append(s.observers, o) }

func (s *Session) AddMetric(m geodesic.Metric) {
	m.Reset()
	s.metrics = append(s.metrics, m)
}

// Step advances the ray by one integration step. It returns false once the
// session has reached a terminal state; the transition rule is evaluated
// before integrating, so a freshly captured or exhausted ray reports its
// terminal status without moving.
func (s *Session) Step() bool {
	if s.status != StatusTracing {
		return false
	}

	if s.steps >= s.cfg.MaxSteps {
		s.status = StatusMaxSteps
		return false
	}

	if s.state.Radius() <= s.captureRadius {
		s.status = StatusCaptured
		return false
	}

	if s.adaptive != nil {
		next, used, suggest, err := s.adaptive.StepAdaptive(s.sys, s.state, s.lambda, s.h)
		if err != nil {
			s.status = StatusDiverged
			return false
		}
		s.state = next
		s.lambda += used
		s.h = suggest
	} else {
		s.state = s.fixed.Step(s.sys, s.state, s.lambda, s.h)
		s.lambda += s.h
	}

	s.steps++

	for _, m := range s.metrics {
		m.Observe(s.state, s.lambda)
	}
	for _, o := range s.observers {
		o.OnStep(s.state, s.lambda)
	}

	return true
}

// Run steps until the session terminates or the ray escapes. It returns the
// final status; a ray that escaped is still StatusTracing.
func (s *Session) Run() Status {
	for s.Step() {
		if s.HasEscaped() {
			break
		}
	}
	return s.status
}

// HasEscaped reports whether the ray is far enough away to be considered
// gone for good.
func (s *Session) HasEscaped() bool {
	return s.state.Radius() > escapeRadiusFactor*s.bh.Mass
}

func (s *Session) Status() Status          { return s.status }
func (s *Session) State() geodesic.State   { return s.state }
func (s *Session) Radius() float64         { return s.state.Radius() }
func (s *Session) Lambda() float64         { return s.lambda }
func (s *Session) StepCount() int          { return s.steps }
func (s *Session) StepSize() float64       { return s.h }
func (s *Session) BlackHole() blackhole.BlackHole { return s.bh }

// MetricValues collects the current values of all attached metrics.
func (s *Session) MetricValues() map[string]float64 {
	if len(s.metrics) == 0 {
		return nil
	}
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
