package seam

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Pixel is an opaque 8-bit RGB sample.
type Pixel struct {
	R, G, B uint8
}

// Grid is a rectangular buffer of pixels stored row-major.
//
// The zero value is an empty grid that no operation in this package accepts;
// build grids with NewGrid, NewGridFromRows or GridFromImage.
type Grid struct {
	width  int
	height int
	pix    []Pixel
}

// NewGrid returns a black grid of the given size. Both dimensions must be at
// least 1.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidArgument, width, height)
	}
	return &Grid{width: width, height: height, pix: make([]Pixel, width*height)}, nil
}

// NewGridFromRows builds a grid from rows[y][x]. The input must be non-empty
// and rectangular; it is copied.
func NewGridFromRows(rows [][]Pixel) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty pixel rows", ErrInvalidArgument)
	}

	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidArgument, y, len(row), g.width)
		}
		copy(g.pix[y*g.width:], row)
	}

	return g, nil
}

// GridFromImage converts any image.Image into a Grid. The alpha channel is
// dropped and the bounds are rebased to (0,0).
func GridFromImage(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", ErrInvalidArgument)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: image has empty bounds %v", ErrInvalidArgument, b)
	}

	// Clone normalizes every source model to NRGBA at origin (0,0).
	src := imaging.Clone(img)
	g := &Grid{width: b.Dx(), height: b.Dy(), pix: make([]Pixel, b.Dx()*b.Dy())}
	for y := 0; y < g.height; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < g.width; x++ {
			i := x * 4
			g.pix[y*g.width+x] = Pixel{R: row[i], G: row[i+1], B: row[i+2]}
		}
	}

	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the pixel at (x, y). It panics if the point is out of bounds.
func (g *Grid) At(x, y int) Pixel {
	if !g.In(x, y) {
		panic(fmt.Sprintf("seam: pixel (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return g.pix[y*g.width+x]
}

// Set stores p at (x, y). It panics if the point is out of bounds.
func (g *Grid) Set(x, y int, p Pixel) {
	if !g.In(x, y) {
		panic(fmt.Sprintf("seam: pixel (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	g.pix[y*g.width+x] = p
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	pix := make([]Pixel, len(g.pix))
	copy(pix, g.pix)
	return &Grid{width: g.width, height: g.height, pix: pix}
}

// Equal reports whether both grids have the same size and pixels.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Image renders the grid as a fully opaque NRGBA image.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := g.pix[y*g.width+x]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// empty reports whether g is nil or has no pixels.
func (g *Grid) empty() bool {
	return g == nil || g.width < 1 || g.height < 1 || len(g.pix) != g.width*g.height
}
