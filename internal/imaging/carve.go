package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/seam-mcp/internal/seam"
)

// CarveOptions controls a carve request.
type CarveOptions struct {
	// Width and Height are the target size. Zero keeps the current size.
	Width  int
	Height int

	// Protect lists regions seams should avoid (e.g. detected text).
	Protect []image.Rectangle

	// Logger receives per-seam debug output; nil is silent.
	Logger *log.Logger
}

// CarveResult contains the carved image and a summary of the work done.
type CarveResult struct {
	ImageResult

	OriginalWidth    int    `json:"original_width"`
	OriginalHeight   int    `json:"original_height"`
	SeamsRemoved     int    `json:"seams_removed"`
	ProtectedRegions int    `json:"protected_regions"`
	OutputPath       string `json:"output_path,omitempty"`
}

// Carve shrinks img to the requested size by seam carving. It returns the
// encoded result and the carved image itself so callers can save it.
func Carve(img image.Image, opts CarveOptions) (*CarveResult, image.Image, error) {
	g, err := seam.GridFromImage(img)
	if err != nil {
		return nil, nil, err
	}

	w, h := opts.Width, opts.Height
	if w == 0 {
		w = g.Width()
	}
	if h == 0 {
		h = g.Height()
	}

	carverOpts := []seam.Option{seam.WithProtectedRegions(opts.Protect...)}
	if opts.Logger != nil {
		carverOpts = append(carverOpts, seam.WithLogger(opts.Logger))
	}
	c, err := seam.New(g, carverOpts...)
	if err != nil {
		return nil, nil, err
	}

	removed, err := seam.CarveTo(c, w, h)
	if err != nil {
		return nil, nil, fmt.Errorf("carve %dx%d to %dx%d: %w", g.Width(), g.Height(), w, h, err)
	}

	out := c.Picture().Image()
	res, err := NewImageResult(out)
	if err != nil {
		return nil, nil, err
	}

	return &CarveResult{
		ImageResult:      *res,
		OriginalWidth:    g.Width(),
		OriginalHeight:   g.Height(),
		SeamsRemoved:     removed,
		ProtectedRegions: len(opts.Protect),
	}, out, nil
}

// ScaleCompareResult pairs a seam-carved image with a uniform rescale of the
// same source to the same size.
type ScaleCompareResult struct {
	Carved   *CarveResult `json:"carved"`
	Rescaled *ImageResult `json:"rescaled"`
}

// Rescale resizes img to width×height with Lanczos resampling.
func Rescale(img image.Image, width, height int) (image.Image, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: rescale target %dx%d", seam.ErrInvalidArgument, width, height)
	}
	return transform.Resize(img, width, height, transform.Lanczos), nil
}

// ScaleCompare carves img to the target and rescales it to the same size.
func ScaleCompare(img image.Image, opts CarveOptions) (*ScaleCompareResult, error) {
	carved, out, err := Carve(img, opts)
	if err != nil {
		return nil, err
	}

	b := out.Bounds()
	scaled, err := Rescale(img, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	rescaled, err := NewImageResult(scaled)
	if err != nil {
		return nil, err
	}

	return &ScaleCompareResult{Carved: carved, Rescaled: rescaled}, nil
}
