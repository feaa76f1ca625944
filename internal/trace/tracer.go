// Package trace runs many independent ray sessions over an image plane.
// Rays do not interact, so the work is split across workers with no
// locking; each session is owned by exactly one goroutine for its lifetime.
package trace

import (
	"context"
	"sync"

	"github.com/san-kum/geotrace/internal/blackhole"
	"github.com/san-kum/geotrace/internal/ray"
)

// Outcome classifies how a pixel's ray ended.
type Outcome int

const (
	OutcomeCaptured Outcome = iota
	OutcomeEscaped
	OutcomeMaxSteps
	OutcomeDiverged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCaptured:
		return "captured"
	case OutcomeEscaped:
		return "escaped"
	case OutcomeMaxSteps:
		return "max_steps"
	case OutcomeDiverged:
		return "diverged"
	}
	return "unknown"
}

// Pixel is the per-ray result consumed by the rendering layer.
type Pixel struct {
	Outcome     Outcome
	Steps       int
	FinalRadius float64
}

// Result is a traced image plane, row-major.
type Result struct {
	Width  int
	Height int
	Pixels []Pixel
}

func (r *Result) At(x, y int) Pixel {
	return r.Pixels[y*r.Width+x]
}

// Count returns how many pixels ended with the given outcome.
func (r *Result) Count(o Outcome) int {
	n := 0
	for _, p := range r.Pixels {
		if p.Outcome == o {
			n++
		}
	}
	return n
}

// Tracer traces a full camera grid against one black hole.
type Tracer struct {
	BlackHole blackhole.BlackHole
	Camera    Camera
	Config    ray.Config
	Workers   int
}

func New(bh blackhole.BlackHole, cam Camera, cfg ray.Config, workers int) *Tracer {
	if workers < 1 {
		workers = 4
	}
	return &Tracer{BlackHole: bh, Camera: cam, Config: cfg, Workers: workers}
}

// Run traces every pixel. The context is checked between pixels so a large
// render can be abandoned; rays themselves are never interrupted mid-step.
func (t *Tracer) Run(ctx context.Context) (*Result, error) {
	w, h := t.Camera.Width, t.Camera.Height
	res := &Result{
		Width:  w,
		Height: h,
		Pixels: make([]Pixel, w*h),
	}

	n := w * h
	parallelFor(n, t.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			select {
			case <-ctx.Done():
				return
			default:
			}
			res.Pixels[i] = t.tracePixel(i%w, i/w)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tracer) tracePixel(px, py int) Pixel {
	dir := t.Camera.Ray(px, py)
	s := ray.New(t.Camera.Position, dir, t.BlackHole, t.Config)

	status := s.Run()

	p := Pixel{Steps: s.StepCount(), FinalRadius: s.Radius()}
	switch {
	case s.HasEscaped():
		p.Outcome = OutcomeEscaped
	case status == ray.StatusCaptured:
		p.Outcome = OutcomeCaptured
	case status == ray.StatusDiverged:
		p.Outcome = OutcomeDiverged
	default:
		p.Outcome = OutcomeMaxSteps
	}
	return p
}

// parallelFor executes fn over [0, n) in contiguous chunks, one goroutine
// per worker.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
