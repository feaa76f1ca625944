package export

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/geotrace/internal/geodesic"
	"github.com/san-kum/geotrace/internal/trace"
)

func TestTrajectoryToSVG(t *testing.T) {
	states := []geodesic.State{
		{0, 10, math.Pi / 2, 0, 1, 0, 0, 0},
		{0, 8, math.Pi / 2, 0.5, 1, 0, 0, 0},
		{0, 6, math.Pi / 2, 1.2, 1, 0, 0, 0},
	}

	svg := TrajectoryToSVG(states, 2.0, 400)

	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<polyline") {
		t.Error("missing trajectory polyline")
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("missing capture-radius disc")
	}
	if strings.Count(svg, ",") < len(states) {
		t.Error("polyline has fewer points than states")
	}
}

func TestTrajectoryToSVGTooShort(t *testing.T) {
	if TrajectoryToSVG([]geodesic.State{{0, 5, 1, 0, 1, 0, 0, 0}}, 2.0, 400) != "" {
		t.Error("expected empty output for single-point trajectory")
	}
}

func TestWritePNG(t *testing.T) {
	res := &trace.Result{
		Width:  2,
		Height: 2,
		Pixels: []trace.Pixel{
			{Outcome: trace.OutcomeCaptured, Steps: 100},
			{Outcome: trace.OutcomeEscaped, Steps: 50},
			{Outcome: trace.OutcomeMaxSteps, Steps: 10000},
			{Outcome: trace.OutcomeDiverged, Steps: 3},
		},
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, res, 10000); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Errorf("image size = %dx%d, want 2x2", bounds.Dx(), bounds.Dy())
	}

	// Captured pixel is black, escaped is not.
	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("captured pixel = (%d,%d,%d), want black", r, g, b)
	}
	r, _, _, _ = img.At(1, 0).RGBA()
	if r == 0 {
		t.Error("escaped pixel should not be black")
	}
}
