package trace

import "math"

// Camera is a pinhole camera generating one ray per pixel. It looks at the
// coordinate origin, where the black hole sits.
type Camera struct {
	Position [3]float64
	FOV      float64 // vertical field of view, degrees
	Width    int
	Height   int
}

// Ray returns the unnormalized direction for pixel (px, py). The direction
// magnitude carries through into the initial four-momentum on purpose: ray
// sessions take the raw vector.
func (c *Camera) Ray(px, py int) [3]float64 {
	forward := normalize([3]float64{-c.Position[0], -c.Position[1], -c.Position[2]})

	worldUp := [3]float64{0, 1, 0}
	if math.Abs(forward[1]) > 0.999 {
		worldUp = [3]float64{1, 0, 0}
	}
	right := normalize(cross(forward, worldUp))
	up := cross(right, forward)

	aspect := float64(c.Width) / float64(c.Height)
	halfH := math.Tan(c.FOV * math.Pi / 360)
	halfW := halfH * aspect

	// Pixel center in [-1, 1], y down in image space.
	u := (2*(float64(px)+0.5)/float64(c.Width) - 1) * halfW
	v := (1 - 2*(float64(py)+0.5)/float64(c.Height)) * halfH

	return [3]float64{
		forward[0] + u*right[0] + v*up[0],
		forward[1] + u*right[1] + v*up[1],
		forward[2] + u*right[2] + v*up[2],
	}
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
