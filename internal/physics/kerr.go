package physics

import (
	"math"

	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/geodesic"
	"github.com/san-kum/geotrace/internal/metric"
)

// Kerr is the spin-aware geodesic model. Instead of integrating the full
// second-order geodesic equation it evolves the first-order Carter equations,
// driven by the conserved quantities derived once from the ray's initial
// state. Momentum components in the state are left untouched; E, Lz and Q
// carry the dynamics.
//
// Both the radial and polar potentials take the positive square root and
// clamp to zero below a turning point, so a ray's radial motion never
// reverses sign. Keep that in mind when interpreting trajectories near
// turning points.
type Kerr struct {
	BlackHole blackhole.BlackHole
	Conserved Conserved
}

// NewKerr constructs the model, deriving the conserved quantities from the
// ray's initial state.
func NewKerr(bh blackhole.BlackHole, x0 geodesic.State) *Kerr {
	return &Kerr{
		BlackHole: bh,
		Conserved: NewConserved(x0, bh),
	}
}

func (k *Kerr) Dim() int {
	return geodesic.Dim
}

func (k *Kerr) Derive(x geodesic.State, lambda float64) geodesic.State {
	r := x[geodesic.R]
	theta := x[geodesic.Theta]

	m, a := k.BlackHole.Mass, k.BlackHole.Spin
	e, lz, q := k.Conserved.E, k.Conserved.Lz, k.Conserved.Q

	sigma := metric.Sigma(r, theta, a)
	delta := metric.Delta(r, m, a)
	sin, cos := math.Sin(theta), math.Cos(theta)
	sin2 := sin * sin

	// Radial potential R(r).
	p := e*(r*r+a*a) - a*lz
	lma := lz - a*e
	radial := p*p - delta*(lma*lma+q)

	// Polar potential Theta(theta).
	polar := q - cos*cos*(a*a*(1-e*e)+lz*lz/sin2)

	dx := make(geodesic.State, geodesic.Dim)
	dx[geodesic.R] = math.Sqrt(math.Max(radial, 0)) / sigma
	dx[geodesic.Theta] = math.Sqrt(math.Max(polar, 0)) / sigma
	dx[geodesic.T] = ((r*r+a*a)*p/delta - a*(a*e*sin2-lz)) / sigma
	dx[geodesic.Phi] = (a*p/delta - (a*e - lz/sin2)) / sigma

	return dx
}
