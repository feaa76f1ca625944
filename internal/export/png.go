package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/san-kum/geotrace/internal/trace"
)

// WritePNG encodes a traced grid: captured pixels are black, escaped pixels
// fade with the step count (heavily bent rays darker), budget-exhausted
// pixels dark red and diverged pixels magenta so numerical trouble is
// visible at a glance.
func WritePNG(w io.Writer, res *trace.Result, maxSteps int) error {
	img := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))

	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			img.Set(x, y, pixelColor(res.At(x, y), maxSteps))
		}
	}

	return png.Encode(w, img)
}

func pixelColor(p trace.Pixel, maxSteps int) color.Color {
	switch p.Outcome {
	case trace.OutcomeCaptured:
		return color.RGBA{A: 255}
	case trace.OutcomeEscaped:
		frac := float64(p.Steps) / float64(maxSteps)
		if frac > 1 {
			frac = 1
		}
		v := uint8(255 - 155*frac)
		return color.RGBA{R: v, G: v, B: 255, A: 255}
	case trace.OutcomeMaxSteps:
		return color.RGBA{R: 96, A: 255}
	default:
		return color.RGBA{R: 255, B: 255, A: 255}
	}
}
