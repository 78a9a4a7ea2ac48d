package seam

import "math"

// BorderEnergy is the energy of every pixel on the outer frame of the grid.
// It exceeds any interior gradient (at most sqrt(6·255²) ≈ 624.6).
const BorderEnergy = 1000.0

// EnergyMap holds one energy value per pixel of the grid it was computed from.
type EnergyMap struct {
	width  int
	height int
	values []float64
}

// ComputeEnergy returns the dual-gradient energy of every pixel in g.
func ComputeEnergy(g *Grid) *EnergyMap {
	e := &EnergyMap{width: g.width, height: g.height, values: make([]float64, len(g.pix))}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x == 0 || y == 0 || x == g.width-1 || y == g.height-1 {
				e.values[y*g.width+x] = BorderEnergy
				continue
			}
			dx := squaredDiff(g.pix[y*g.width+x-1], g.pix[y*g.width+x+1])
			dy := squaredDiff(g.pix[(y-1)*g.width+x], g.pix[(y+1)*g.width+x])
			e.values[y*g.width+x] = math.Sqrt(dx + dy)
		}
	}

	return e
}

// squaredDiff sums the squared per-channel differences of a and b.
func squaredDiff(a, b Pixel) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

// Width returns the number of columns.
func (e *EnergyMap) Width() int { return e.width }

// Height returns the number of rows.
func (e *EnergyMap) Height() int { return e.height }

// At returns the energy at (x, y). The caller must keep (x, y) in bounds.
func (e *EnergyMap) At(x, y int) float64 { return e.values[y*e.width+x] }

// Max returns the largest energy in the map.
func (e *EnergyMap) Max() float64 {
	m := 0.0
	for _, v := range e.values {
		if v > m {
			m = v
		}
	}
	return m
}

// Clone returns a deep copy of e.
func (e *EnergyMap) Clone() *EnergyMap {
	values := make([]float64, len(e.values))
	copy(values, e.values)
	return &EnergyMap{width: e.width, height: e.height, values: values}
}
