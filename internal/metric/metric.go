// Package metric computes spacetime metric coefficients for Schwarzschild
// and Kerr black holes in Boyer-Lindquist-style coordinates (t, r, theta, phi),
// geometric units G = c = 1.
package metric

import (
	"math"

	"github.com/san-kum/geotrace/internal/blackhole"
)

// Tensor is a symmetric 4x4 metric tensor indexed (t, r, theta, phi).
type Tensor [4][4]float64

// Schwarzschild coefficients. GRR diverges as r approaches 2M; callers must
// not evaluate it across the horizon.

// GTT returns g_tt = -(1 - 2M/r).
func GTT(mass, r float64) float64 {
	return -(1 - 2*mass/r)
}

// GRR returns g_rr = 1/(1 - 2M/r).
func GRR(mass, r float64) float64 {
	return 1 / (1 - 2*mass/r)
}

// GThetaTheta returns g_theta_theta = r^2.
func GThetaTheta(r float64) float64 {
	return r * r
}

// GPhiPhi returns g_phi_phi = r^2 sin^2(theta).
func GPhiPhi(r, theta float64) float64 {
	s := math.Sin(theta)
	return r * r * s * s
}

// Sigma returns r^2 + a^2 cos^2(theta).
func Sigma(r, theta, a float64) float64 {
	c := math.Cos(theta)
	return r*r + a*a*c*c
}

// Delta returns r^2 - 2Mr + a^2.
func Delta(r, mass, a float64) float64 {
	return r*r - 2*mass*r + a*a
}

// Components returns the full metric tensor at (r, theta). For zero spin it
// reduces to the Schwarzschild coefficients with vanishing off-diagonal
// terms; for nonzero spin the frame-dragging cross term g_t_phi appears.
func Components(r, theta float64, bh blackhole.BlackHole) Tensor {
	m, a := bh.Mass, bh.Spin
	sigma := Sigma(r, theta, a)
	delta := Delta(r, m, a)
	s := math.Sin(theta)
	s2 := s * s

	var g Tensor
	g[0][0] = -(1 - 2*m*r/sigma)
	g[1][1] = sigma / delta
	g[2][2] = sigma
	g[3][3] = (r*r + a*a + 2*m*a*a*r*s2/sigma) * s2

	gtp := -2 * m * a * r * s2 / sigma
	g[0][3] = gtp
	g[3][0] = gtp

	return g
}

// IsInsideEventHorizon reports whether r lies at or inside the Schwarzschild
// horizon 2M.
func IsInsideEventHorizon(mass, r float64) bool {
	return r <= 2*mass
}

// TimeDilationFactor returns the proper-time rate of a stationary observer
// at radius r relative to infinity: 0 at and inside the horizon,
// sqrt(1 - 2M/r) outside.
func TimeDilationFactor(mass, r float64) float64 {
	if IsInsideEventHorizon(mass, r) {
		return 0
	}
	return math.Sqrt(1 - 2*mass/r)
}
