package trace

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/ray"
)

func testTracer(workers int) *Tracer {
	bh := blackhole.NewSchwarzschild(1.0)
	cam := Camera{
		Position: [3]float64{8, 0, 0},
		FOV:      90,
		Width:    8,
		Height:   8,
	}
	return New(bh, cam, ray.DefaultConfig(), workers)
}

func TestCameraRayAim(t *testing.T) {
	cam := Camera{Position: [3]float64{8, 0, 0}, FOV: 90, Width: 8, Height: 8}

	// Every pixel's ray leans toward the black hole at the origin.
	for py := 0; py < cam.Height; py++ {
		for px := 0; px < cam.Width; px++ {
			dir := cam.Ray(px, py)
			if dir[0] >= 0 {
				t.Errorf("pixel (%d,%d): direction x = %f, want negative", px, py, dir[0])
			}
		}
	}

	// Symmetric pixels mirror in the image plane.
	a := cam.Ray(0, 3)
	b := cam.Ray(7, 3)
	if math.Abs(a[2]+b[2]) > 1e-12 {
		t.Errorf("horizontal mirror broken: %f vs %f", a[2], b[2])
	}
}

func TestRunClassifiesPixels(t *testing.T) {
	res, err := testTracer(2).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Pixels) != 64 {
		t.Fatalf("pixel count = %d, want 64", len(res.Pixels))
	}

	// Central rays aim straight at the hole and fall in; the wide-angle
	// corner rays gain enough angular motion to climb back out.
	for _, xy := range [][2]int{{3, 3}, {4, 3}, {3, 4}, {4, 4}} {
		p := res.At(xy[0], xy[1])
		if p.Outcome != OutcomeCaptured {
			t.Errorf("center pixel %v = %v, want captured", xy, p.Outcome)
		}
	}
	for _, xy := range [][2]int{{0, 0}, {7, 0}, {0, 7}, {7, 7}} {
		p := res.At(xy[0], xy[1])
		if p.Outcome != OutcomeEscaped {
			t.Errorf("corner pixel %v = %v, want escaped", xy, p.Outcome)
		}
	}

	if res.Count(OutcomeCaptured) == 0 || res.Count(OutcomeEscaped) == 0 {
		t.Error("expected a mix of captured and escaped pixels")
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	a, err := testTracer(1).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := testTracer(7).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Errorf("pixel %d differs: %+v vs %+v", i, a.Pixels[i], b.Pixels[i])
		}
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := testTracer(2).Run(ctx); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestParallelForCoversRange(t *testing.T) {
	seen := make([]int, 100)
	parallelFor(100, 8, func(start, end int) {
		for i := start; i < end; i++ {
			seen[i]++
		}
	})

	for i, n := range seen {
		if n != 1 {
			t.Errorf("index %d visited %d times", i, n)
		}
	}
}
