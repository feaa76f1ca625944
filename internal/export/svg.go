// Package export renders traced data to portable formats: SVG polylines
// for single-ray trajectories and PNG for traced image grids.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/geotrace/internal/geodesic"
)

// TrajectoryToSVG projects a trajectory onto the equatorial plane
// (x = r cos(phi), y = r sin(phi)) and renders it as an SVG polyline with
// the capture radius drawn as a filled disc at the origin.
func TrajectoryToSVG(states []geodesic.State, captureRadius float64, size int) string {
	if len(states) < 2 {
		return ""
	}

	xs := make([]float64, len(states))
	ys := make([]float64, len(states))
	maxR := captureRadius
	for i, x := range states {
		r, phi := x[geodesic.R], x[geodesic.Phi]
		xs[i] = r * math.Cos(phi)
		ys[i] = r * math.Sin(phi)
		if r > maxR {
			maxR = r
		}
	}

	// World [-maxR, maxR] mapped into the viewport with a small margin.
	scale := float64(size) / (2.2 * maxR)
	toPx := func(v float64) float64 {
		return float64(size)/2 + v*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#1a1a2e" stroke="#444466"/>
`, toPx(0), toPx(0), captureRadius*scale))

	sb.WriteString(`<polyline fill="none" stroke="#00ff88" stroke-width="1.5" points="`)
	for i := range xs {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", toPx(xs[i]), toPx(-ys[i])))
	}
	sb.WriteString("\"/>\n</svg>\n")

	return sb.String()
}
