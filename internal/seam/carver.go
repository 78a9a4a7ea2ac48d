package seam

import (
	"fmt"
	"image"
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a Carver.
type Option func(*options)

type options struct {
	logger  *log.Logger
	protect []image.Rectangle
}

// WithLogger sends a debug line per removal to l. By default the Carver is silent.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProtectedRegions keeps seams out of the given rectangles whenever a
// cheaper route exists. Protection raises path weights by ProtectionPenalty;
// Energy still reports the plain gradient energy. The protected area travels
// with the content as seams are removed.
func WithProtectedRegions(rects ...image.Rectangle) Option {
	return func(o *options) {
		o.protect = append(o.protect, rects...)
	}
}

// snapshot is one consistent Ready state. It is never mutated after
// construction.
type snapshot struct {
	grid       *Grid
	energy     *EnergyMap
	protect    *mask
	vertical   Seam
	horizontal Seam
}

// buildSnapshot takes ownership of g and protect and derives everything else.
func buildSnapshot(g *Grid, protect *mask) (*snapshot, error) {
	energy := ComputeEnergy(g)

	vertical, err := findSeam(energy, Vertical, protect)
	if err != nil {
		return nil, err
	}
	horizontal, err := findSeam(energy, Horizontal, protect)
	if err != nil {
		return nil, err
	}

	return &snapshot{
		grid:       g,
		energy:     energy,
		protect:    protect,
		vertical:   vertical,
		horizontal: horizontal,
	}, nil
}

// Carver shrinks a picture one seam at a time.
type Carver struct {
	logger *log.Logger
	state  *snapshot
}

// New copies g and prepares its energy map and both minimum seams.
func New(g *Grid, opts ...Option) (*Carver, error) {
	if g.empty() {
		return nil, fmt.Errorf("%w: grid is nil or empty", ErrInvalidArgument)
	}

	cfg := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&cfg)
	}

	own := g.Clone()
	state, err := buildSnapshot(own, newMask(own.width, own.height, cfg.protect))
	if err != nil {
		return nil, err
	}

	c := &Carver{logger: cfg.logger, state: state}
	c.logger.Debug("carver ready",
		"width", own.width,
		"height", own.height,
		"protected", state.protect.count())

	return c, nil
}

// Width returns the current picture width.
func (c *Carver) Width() int { return c.state.grid.width }

// Height returns the current picture height.
func (c *Carver) Height() int { return c.state.grid.height }

// Energy returns the energy of pixel (x, y) of the current picture.
func (c *Carver) Energy(x, y int) (float64, error) {
	if !c.state.grid.In(x, y) {
		return 0, fmt.Errorf("%w: pixel (%d,%d) outside %dx%d picture",
			ErrInvalidArgument, x, y, c.Width(), c.Height())
	}
	return c.state.energy.At(x, y), nil
}

// EnergyMap returns a copy of the current energy map.
func (c *Carver) EnergyMap() *EnergyMap { return c.state.energy.Clone() }

// FindVerticalSeam returns the cached minimum vertical seam (length Height).
// The returned slice is the caller's to keep.
func (c *Carver) FindVerticalSeam() Seam { return c.state.vertical.Clone() }

// FindHorizontalSeam returns the cached minimum horizontal seam (length Width).
// The returned slice is the caller's to keep.
func (c *Carver) FindHorizontalSeam() Seam { return c.state.horizontal.Clone() }

// Seam returns the cached minimum seam for orientation o.
func (c *Carver) Seam(o Orientation) Seam {
	if o == Horizontal {
		return c.FindHorizontalSeam()
	}
	return c.FindVerticalSeam()
}

// RemoveVerticalSeam deletes one pixel per row, narrowing the picture by one.
func (c *Carver) RemoveVerticalSeam(s Seam) error {
	return c.remove(s, Vertical)
}

// RemoveHorizontalSeam deletes one pixel per column, shortening the picture by one.
func (c *Carver) RemoveHorizontalSeam(s Seam) error {
	return c.remove(s, Horizontal)
}

// RemoveSeam deletes s in orientation o.
func (c *Carver) RemoveSeam(s Seam, o Orientation) error {
	return c.remove(s, o)
}

// remove validates s, builds the next snapshot and only then replaces the
// current one; on any error the Carver is untouched.
func (c *Carver) remove(s Seam, o Orientation) error {
	cur := c.state

	grid, err := RemoveSeam(cur.grid, s, o)
	if err != nil {
		return err
	}
	next, err := buildSnapshot(grid, cur.protect.without(s, o))
	if err != nil {
		return err
	}
	c.state = next

	c.logger.Debug("seam removed",
		"orientation", o,
		"width", grid.width,
		"height", grid.height)

	return nil
}

// Picture returns a copy of the current picture.
func (c *Carver) Picture() *Grid { return c.state.grid.Clone() }

// Protected reports whether pixel (x, y) of the current picture is protected.
func (c *Carver) Protected(x, y int) bool {
	return c.state.grid.In(x, y) && c.state.protect.has(x, y)
}
