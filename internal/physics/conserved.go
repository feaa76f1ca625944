package physics

import (
	"math"

	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/geodesic"
)

// Conserved holds the constants of photon motion in Kerr spacetime:
// energy E, axial angular momentum Lz, and Carter's constant Q.
type Conserved struct {
	E  float64
	Lz float64
	Q  float64
}

// NewConserved derives the constants of motion from a geodesic state.
// Pure function of the given position and momentum; the input is not
// validated against the null-geodesic condition, so Q can come out
// negative for non-physical momenta.
func NewConserved(x geodesic.State, bh blackhole.BlackHole) Conserved {
	theta := x[geodesic.Theta]
	a := bh.Spin

	e := -x[geodesic.PT]
	lz := x[geodesic.PPhi]

	sin, cos := math.Sin(theta), math.Cos(theta)
	pTheta := x[geodesic.PTheta]
	q := pTheta*pTheta + cos*cos*(a*a*(e*e-1)+lz*lz/(sin*sin))

	return Conserved{E: e, Lz: lz, Q: q}
}
