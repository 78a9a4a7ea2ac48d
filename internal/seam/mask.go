package seam

import "image"

// mask marks protected pixels. A nil *mask protects nothing.
type mask struct {
	width  int
	height int
	bits   []bool
}

// newMask marks every pixel of a width×height grid that falls inside any of
// rects. Rectangles are clipped to the grid; it returns nil when nothing is
// marked.
func newMask(width, height int, rects []image.Rectangle) *mask {
	bounds := image.Rect(0, 0, width, height)
	m := &mask{width: width, height: height, bits: make([]bool, width*height)}
	marked := 0

	for _, r := range rects {
		r = r.Canon().Intersect(bounds)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if !m.bits[y*width+x] {
					m.bits[y*width+x] = true
					marked++
				}
			}
		}
	}

	if marked == 0 {
		return nil
	}
	return m
}

func (m *mask) has(x, y int) bool {
	return m != nil && m.bits[y*m.width+x]
}

// count returns the number of protected pixels.
func (m *mask) count() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// without returns the mask with the seam's cells removed, mirroring RemoveSeam.
func (m *mask) without(s Seam, o Orientation) *mask {
	if m == nil {
		return nil
	}
	bits, w, h := carve(m.bits, m.width, m.height, s, o)
	return &mask{width: w, height: h, bits: bits}
}
