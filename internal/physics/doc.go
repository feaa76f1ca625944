// Package physics provides the geodesic derivative functions for photon
// transport around a black hole.
//
// Each model implements the [geodesic.System] interface, defining the rate
// of change of the 8-component spacetime state along the affine parameter:
//
//   - [Schwarzschild]: approximate non-rotating model using a partial
//     Christoffel expansion, intended for fixed-step RK4
//   - [Kerr]: rotating model driven by the conserved quantities
//     (energy, axial angular momentum, Carter constant), intended for
//     adaptive RKF45
//
// The [Conserved] calculator derives the constants of motion from a ray's
// initial state; a Kerr model holds them fixed for the life of the ray.
package physics
