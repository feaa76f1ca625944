package physics

import (
	"math"

	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/geodesic"
)

// Schwarzschild is the approximate non-rotating geodesic model. The position
// derivative is the momentum taken directly, and the momentum derivative
// keeps only the radial component of a partial Christoffel-symbol expansion.
// The azimuthal and polar momenta are never adjusted; this trades accuracy
// for a cheap derivative suited to fixed-step RK4.
type Schwarzschild struct {
	BlackHole blackhole.BlackHole
}

func NewSchwarzschild(bh blackhole.BlackHole) *Schwarzschild {
	return &Schwarzschild{BlackHole: bh}
}

func (s *Schwarzschild) Dim() int {
	return geodesic.Dim
}

func (s *Schwarzschild) Derive(x geodesic.State, lambda float64) geodesic.State {
	r := x[geodesic.R]
	theta := x[geodesic.Theta]
	m := s.BlackHole.Mass

	dx := make(geodesic.State, geodesic.Dim)

	// d(position)/dlambda = momentum.
	dx[geodesic.T] = x[geodesic.PT]
	dx[geodesic.R] = x[geodesic.PR]
	dx[geodesic.Theta] = x[geodesic.PTheta]
	dx[geodesic.Phi] = x[geodesic.PPhi]

	// Radial equation of motion only; zero once at or inside the horizon.
	if r > 2*m {
		rsOverR := 2 * m / r
		sin := math.Sin(theta)
		pt := x[geodesic.PT]
		pr := x[geodesic.PR]
		ptheta := x[geodesic.PTheta]
		pphi := x[geodesic.PPhi]

		dx[geodesic.PR] = -rsOverR/(2*r*r)*pt*pt +
			rsOverR*(1-rsOverR)/(2*r*r)*pr*pr +
			r*(1-rsOverR)*(ptheta*ptheta+sin*sin*pphi*pphi)
	}

	return dx
}
