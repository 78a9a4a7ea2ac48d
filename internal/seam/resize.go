package seam

import "fmt"

// CarveTo removes vertical seams until the picture is width wide, then
// horizontal seams until it is height tall. It returns the number of seams
// removed. Targets must be between 1 and the current size.
//
// Validation happens before the first removal, so on error nothing is removed.
func CarveTo(c *Carver, width, height int) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("%w: carver is nil", ErrInvalidArgument)
	}
	if width < 1 || width > c.Width() || height < 1 || height > c.Height() {
		return 0, fmt.Errorf("%w: target %dx%d not within 1x1..%dx%d",
			ErrInvalidArgument, width, height, c.Width(), c.Height())
	}

	removed := 0
	for c.Width() > width {
		if err := c.RemoveVerticalSeam(c.FindVerticalSeam()); err != nil {
			return removed, err
		}
		removed++
	}
	for c.Height() > height {
		if err := c.RemoveHorizontalSeam(c.FindHorizontalSeam()); err != nil {
			return removed, err
		}
		removed++
	}

	c.logger.Debug("carve complete", "width", c.Width(), "height", c.Height(), "seams", removed)
	return removed, nil
}
