package seam

import "fmt"

// validateShape checks that s could be a seam of a width×height grid in
// orientation o: correct length, every index in range and no step larger than 1.
func validateShape(width, height int, s Seam, o Orientation) error {
	if s == nil {
		return fmt.Errorf("%w: seam is nil", ErrInvalidArgument)
	}

	var length, limit int
	switch o {
	case Vertical:
		length, limit = height, width
	case Horizontal:
		length, limit = width, height
	default:
		return fmt.Errorf("%w: unknown orientation %d", ErrInvalidArgument, int(o))
	}

	if len(s) != length {
		return fmt.Errorf("%w: %s seam length %d, want %d", ErrInvalidArgument, o, len(s), length)
	}
	for i, v := range s {
		if v < 0 || v >= limit {
			return fmt.Errorf("%w: %s seam index %d at step %d outside [0,%d)", ErrInvalidArgument, o, v, i, limit)
		}
		if i > 0 && (v-s[i-1] > 1 || s[i-1]-v > 1) {
			return fmt.Errorf("%w: %s seam jumps from %d to %d at step %d", ErrInvalidArgument, o, s[i-1], v, i)
		}
	}

	return nil
}

// ValidateSeam checks s against a width×height grid. Besides the shape rules
// it rejects removal when the dimension being shrunk is already 1.
func ValidateSeam(width, height int, s Seam, o Orientation) error {
	if err := validateShape(width, height, s, o); err != nil {
		return err
	}
	if o == Vertical && width <= 1 {
		return fmt.Errorf("%w: cannot remove a vertical seam from width %d", ErrInvalidArgument, width)
	}
	if o == Horizontal && height <= 1 {
		return fmt.Errorf("%w: cannot remove a horizontal seam from height %d", ErrInvalidArgument, height)
	}
	return nil
}

// RemoveSeam returns a new grid with the seam's pixels deleted. g is not
// modified. Pixels before the seam keep their index and pixels after it shift
// down by one, in original order.
func RemoveSeam(g *Grid, s Seam, o Orientation) (*Grid, error) {
	if g.empty() {
		return nil, fmt.Errorf("%w: grid is nil or empty", ErrInvalidArgument)
	}
	if err := ValidateSeam(g.width, g.height, s, o); err != nil {
		return nil, err
	}

	pix, w, h := carve(g.pix, g.width, g.height, s, o)
	return &Grid{width: w, height: h, pix: pix}, nil
}

// carve removes one cell per line from a row-major width×height buffer. The
// seam must already be validated. It returns the new buffer and dimensions.
func carve[T any](src []T, width, height int, s Seam, o Orientation) ([]T, int, int) {
	if o == Vertical {
		nw := width - 1
		dst := make([]T, nw*height)
		for y := 0; y < height; y++ {
			row := src[y*width : (y+1)*width]
			out := dst[y*nw : (y+1)*nw]
			cut := s[y]
			copy(out, row[:cut])
			copy(out[cut:], row[cut+1:])
		}
		return dst, nw, height
	}

	nh := height - 1
	dst := make([]T, width*nh)
	for x := 0; x < width; x++ {
		cut := s[x]
		for y := 0; y < height; y++ {
			switch {
			case y < cut:
				dst[y*width+x] = src[y*width+x]
			case y > cut:
				dst[(y-1)*width+x] = src[y*width+x]
			}
		}
	}
	return dst, width, nh
}
