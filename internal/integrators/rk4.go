package integrators

import "github.com/san-kum/geotrace/internal/geodesic"

// RK4 is the classical fixed-step 4-stage Runge-Kutta integrator used by
// the approximate Schwarzschild model. Scratch buffers are reused across
// steps, so an RK4 value must not be shared between rays being advanced
// concurrently.
type RK4 struct {
	k1, k2, k3, k4 geodesic.State
	scratch        geodesic.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(geodesic.State, n)
		r.k2 = make(geodesic.State, n)
		r.k3 = make(geodesic.State, n)
		r.k4 = make(geodesic.State, n)
		r.scratch = make(geodesic.State, n)
	}
}

func (r *RK4) Step(sys geodesic.System, x geodesic.State, lambda, h float64) geodesic.State {
	n := len(x)
	r.ensureScratch(n)

	k1 := sys.Derive(x, lambda)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k1[i]
	}
	k2 := sys.Derive(r.scratch, lambda+h*0.5)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k2[i]
	}
	k3 := sys.Derive(r.scratch, lambda+h*0.5)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*r.k3[i]
	}
	k4 := sys.Derive(r.scratch, lambda+h)
	copy(r.k4, k4)

	result := make(geodesic.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
