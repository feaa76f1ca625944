package blackhole

import "math"

// BlackHole holds the physical parameters of a rotating black hole in
// geometric units (G = c = 1). Mass is in solar masses; Spin is the angular
// momentum per unit mass a = J/M. Immutable once constructed.
type BlackHole struct {
	Mass float64
	Spin float64
}

// New constructs a black hole, clamping the spin to the physical range
// |a| <= M. Mass is not validated.
func New(mass, spin float64) BlackHole {
	if spin > mass {
		spin = mass
	}
	if spin < -mass {
		spin = -mass
	}
	return BlackHole{Mass: mass, Spin: spin}
}

// NewSchwarzschild constructs a non-rotating black hole.
func NewSchwarzschild(mass float64) BlackHole {
	return New(mass, 0)
}

// SchwarzschildRadius returns 2M, the horizon radius at zero spin.
func (b BlackHole) SchwarzschildRadius() float64 {
	return 2 * b.Mass
}

// OuterHorizon returns the outer event horizon r+ = M + sqrt(M^2 - a^2).
func (b BlackHole) OuterHorizon() float64 {
	return b.Mass + math.Sqrt(b.Mass*b.Mass-b.Spin*b.Spin)
}

// InnerHorizon returns the inner (Cauchy) horizon r- = M - sqrt(M^2 - a^2).
func (b BlackHole) InnerHorizon() float64 {
	return b.Mass - math.Sqrt(b.Mass*b.Mass-b.Spin*b.Spin)
}

// ErgosphereRadius returns the outer boundary of the ergosphere at polar
// angle theta. Coincides with the outer horizon at the poles.
func (b BlackHole) ErgosphereRadius(theta float64) float64 {
	c := math.Cos(theta)
	return b.Mass + math.Sqrt(b.Mass*b.Mass-b.Spin*b.Spin*c*c)
}

// ISCORadius returns the innermost stable circular orbit for prograde
// equatorial orbits, from the Bardeen-Press-Teukolsky closed form.
// Reduces to 6M at zero spin.
func (b BlackHole) ISCORadius() float64 {
	m := b.Mass
	a := math.Abs(b.Spin) / m
	z1 := 1 + math.Cbrt(1-a*a)*(math.Cbrt(1+a)+math.Cbrt(1-a))
	z2 := math.Sqrt(3*a*a + z1*z1)
	return m * (3 + z2 - math.Sqrt((3-z1)*(3+z1+2*z2)))
}

// PhotonSphereRadius returns the prograde equatorial circular photon orbit
// radius. Reduces to 3M at zero spin.
func (b BlackHole) PhotonSphereRadius() float64 {
	m := b.Mass
	a := math.Abs(b.Spin) / m
	return 2 * m * (1 + math.Cos(2.0/3.0*math.Acos(-a)))
}
