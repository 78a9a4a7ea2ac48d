package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/seam-mcp/internal/seam"
)

// EnergyMapResult contains a rendering of a picture's energy map.
type EnergyMapResult struct {
	ImageResult

	// MaxEnergy is the value mapped to full intensity.
	MaxEnergy float64 `json:"max_energy"`

	// Heatmap is true when the rendering is colored rather than grayscale.
	Heatmap bool `json:"heatmap"`
}

// RenderEnergy draws e as an image scaled to its maximum energy.
//
// In grayscale mode brighter pixels carry more energy. In heatmap mode the hue
// sweeps from blue (low) to red (high). The border sentinel dominates the
// scale, so interior detail is easier to see with a square-root curve, which
// both modes apply.
func RenderEnergy(e *seam.EnergyMap, heatmap bool) image.Image {
	w, h := e.Width(), e.Height()
	maxE := e.Max()
	rect := image.Rect(0, 0, w, h)

	level := func(v float64) float64 {
		if maxE == 0 {
			return 0
		}
		return math.Sqrt(v / maxE)
	}

	if !heatmap {
		out := image.NewGray(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.SetGray(x, y, color.Gray{Y: uint8(math.Round(level(e.At(x, y)) * 255))})
			}
		}
		return out
	}

	out := image.NewNRGBA(rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := colorful.Hsv(240*(1-level(e.At(x, y))), 1, 1)
			r, g, b := c.Clamped().RGB255()
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// EnergyMap computes and renders the energy map of img.
func EnergyMap(img image.Image, heatmap bool) (*EnergyMapResult, error) {
	g, err := seam.GridFromImage(img)
	if err != nil {
		return nil, err
	}
	e := seam.ComputeEnergy(g)

	res, err := NewImageResult(RenderEnergy(e, heatmap))
	if err != nil {
		return nil, err
	}
	return &EnergyMapResult{ImageResult: *res, MaxEnergy: e.Max(), Heatmap: heatmap}, nil
}

// PixelEnergyResult is the energy of one pixel.
type PixelEnergyResult struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Energy float64 `json:"energy"`
	Border bool    `json:"border"`
}

// PixelEnergy returns the energy of pixel (x, y) of img.
func PixelEnergy(img image.Image, x, y int) (*PixelEnergyResult, error) {
	g, err := seam.GridFromImage(img)
	if err != nil {
		return nil, err
	}
	if !g.In(x, y) {
		return nil, fmt.Errorf("%w: pixel (%d,%d) outside %dx%d image",
			seam.ErrInvalidArgument, x, y, g.Width(), g.Height())
	}
	en := seam.ComputeEnergy(g).At(x, y)

	return &PixelEnergyResult{
		X:      x,
		Y:      y,
		Energy: en,
		Border: x == 0 || y == 0 || x == g.Width()-1 || y == g.Height()-1,
	}, nil
}
