// Package geodesic provides core primitives for tracing light paths
// through curved spacetime.
//
// The package defines the fundamental interfaces and types shared by the
// metric models and numerical steppers:
//
//   - [State]: flat vector holding a spacetime point and its momentum
//   - [System]: interface for geodesic derivative functions (dX/dλ = f(X, λ))
//   - [Integrator]: fixed-step numerical stepper interface
//   - [AdaptiveIntegrator]: embedded stepper with error control
//   - [StepControl]: tolerances and step bounds for adaptive stepping
//
// # Example
//
//	sys := physics.NewSchwarzschild(bh)
//	integ := integrators.NewRK4()
//	x = integ.Step(sys, x, lambda, h)
//
// # Thread Safety
//
// States and systems are not synchronized. Rays are independent: advance
// each one from a single goroutine and tracing in parallel is safe.
package geodesic
