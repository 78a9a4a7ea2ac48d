package seam

import (
	"fmt"
	"strings"
)

// Orientation selects which way a seam runs.
type Orientation int

const (
	// Vertical seams run top to bottom with one column index per row.
	// Removing one narrows the image by a column.
	Vertical Orientation = iota

	// Horizontal seams run left to right with one row index per column.
	// Removing one shortens the image by a row.
	Horizontal
)

// String returns "vertical" or "horizontal".
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation accepts "vertical"/"v" and "horizontal"/"h", case-insensitively.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	default:
		return 0, fmt.Errorf("%w: unknown orientation %q", ErrInvalidArgument, s)
	}
}

// Seam is a sequence of perpendicular indices, one per step along the
// traversal axis: column indices for a vertical seam, row indices for a
// horizontal one.
type Seam []int

// Clone returns an independent copy of the seam.
func (s Seam) Clone() Seam {
	if s == nil {
		return nil
	}
	out := make(Seam, len(s))
	copy(out, s)
	return out
}
