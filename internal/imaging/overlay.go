package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/seam-mcp/internal/seam"
)

// DefaultSeamColor is used when no valid overlay color is given.
const DefaultSeamColor = "#FF0000"

// SeamResult describes the minimum seam of an image.
type SeamResult struct {
	// Orientation is "vertical" or "horizontal".
	Orientation string `json:"orientation"`

	// Seam holds one column index per row (vertical) or one row index per
	// column (horizontal).
	Seam []int `json:"seam"`

	// Cost is the total energy of the pixels on the seam.
	Cost float64 `json:"cost"`

	// Overlay is the source image with the seam drawn on it, when requested.
	Overlay *ImageResult `json:"overlay,omitempty"`
}

// FindSeam returns the minimum seam of img in orientation o.
func FindSeam(img image.Image, o seam.Orientation) (*SeamResult, error) {
	g, err := seam.GridFromImage(img)
	if err != nil {
		return nil, err
	}
	return findSeam(g, o)
}

func findSeam(g *seam.Grid, o seam.Orientation) (*SeamResult, error) {
	e := seam.ComputeEnergy(g)
	s, err := seam.FindSeam(e, o)
	if err != nil {
		return nil, err
	}
	cost, err := seam.SeamCost(e, s, o)
	if err != nil {
		return nil, err
	}

	return &SeamResult{Orientation: o.String(), Seam: s, Cost: cost}, nil
}

// OverlaySeam finds the minimum seam of img and returns it together with a
// copy of img that has the seam painted in colorHex ("#RRGGBB"). An
// unparseable color falls back to DefaultSeamColor.
func OverlaySeam(img image.Image, o seam.Orientation, colorHex string) (*SeamResult, error) {
	g, err := seam.GridFromImage(img)
	if err != nil {
		return nil, err
	}
	res, err := findSeam(g, o)
	if err != nil {
		return nil, err
	}

	canvas := g.Image()
	DrawSeam(canvas, res.Seam, o, ParseSeamColor(colorHex))

	res.Overlay, err = NewImageResult(canvas)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DrawSeam paints the seam's pixels on dst. Indices outside dst are skipped.
func DrawSeam(dst draw.Image, s seam.Seam, o seam.Orientation, c color.Color) {
	b := dst.Bounds()
	for step, pos := range s {
		x, y := pos, step
		if o == seam.Horizontal {
			x, y = step, pos
		}
		p := image.Pt(x+b.Min.X, y+b.Min.Y)
		if p.In(b) {
			dst.Set(p.X, p.Y, c)
		}
	}
}

// ParseSeamColor parses "#RRGGBB" or "RRGGBB", falling back to
// DefaultSeamColor.
func ParseSeamColor(hex string) color.Color {
	hex = strings.TrimSpace(hex)
	if hex != "" && !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(DefaultSeamColor)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
