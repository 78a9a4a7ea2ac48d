package seam

import (
	"fmt"

	"github.com/ironsheep/seam-mcp/internal/shortestpath"
)

// ProtectionPenalty is added to the path weight of every protected pixel.
// It is large enough that any seam avoiding protected pixels is preferred.
const ProtectionPenalty = 1e9

// lattice maps a grid onto traversal coordinates so that one search serves
// both orientations. step runs along the seam; pos is the perpendicular index.
// Vertex ids are step*breadth + pos.
type lattice struct {
	steps   int
	breadth int
	weight  func(step, pos int) float64
}

// newLattice builds the traversal view of e for orientation o. protect may be
// nil.
func newLattice(e *EnergyMap, o Orientation, protect *mask) lattice {
	cost := func(x, y int) float64 {
		w := e.At(x, y)
		if protect.has(x, y) {
			w += ProtectionPenalty
		}
		return w
	}

	if o == Horizontal {
		return lattice{
			steps:   e.width,
			breadth: e.height,
			weight:  func(step, pos int) float64 { return cost(step, pos) },
		}
	}
	return lattice{
		steps:   e.height,
		breadth: e.width,
		weight:  func(step, pos int) float64 { return cost(pos, step) },
	}
}

func (l lattice) vertex(step, pos int) int { return step*l.breadth + pos }

// edges generates the up to three successors of v on the next step.
func (l lattice) edges(v int, dst []shortestpath.Edge) []shortestpath.Edge {
	step, pos := v/l.breadth, v%l.breadth
	next := step + 1
	if next >= l.steps {
		return dst
	}
	for q := pos - 1; q <= pos+1; q++ {
		if q < 0 || q >= l.breadth {
			continue
		}
		dst = append(dst, shortestpath.Edge{To: l.vertex(next, q), Weight: l.weight(next, q)})
	}
	return dst
}

// edge returns the vertices of the first or last step, in pos order.
func (l lattice) edge(step int) []int {
	vs := make([]int, l.breadth)
	for p := range vs {
		vs[p] = l.vertex(step, p)
	}
	return vs
}

// sources returns the starting vertices. Sources carry no weight of their
// own, so protected cells on the first step are left out unless every cell
// there is protected.
func (l lattice) sources(o Orientation, protect *mask) []int {
	all := l.edge(0)
	if protect == nil {
		return all
	}

	open := make([]int, 0, len(all))
	for p, v := range all {
		x, y := p, 0
		if o == Horizontal {
			x, y = 0, p
		}
		if !protect.has(x, y) {
			open = append(open, v)
		}
	}
	if len(open) == 0 {
		return all
	}
	return open
}

// FindSeam returns the minimum-energy seam of e in orientation o.
//
// The cost of a seam is the sum of the energies of every cell after the
// first; sources start at distance 0. Among equally cheap seams, the one whose
// final cell has the lowest index wins.
func FindSeam(e *EnergyMap, o Orientation) (Seam, error) {
	return findSeam(e, o, nil)
}

func findSeam(e *EnergyMap, o Orientation, protect *mask) (Seam, error) {
	if e == nil || e.width < 1 || e.height < 1 {
		return nil, fmt.Errorf("%w: empty energy map", ErrInvalidArgument)
	}
	if o != Vertical && o != Horizontal {
		return nil, fmt.Errorf("%w: unknown orientation %d", ErrInvalidArgument, int(o))
	}

	l := newLattice(e, o, protect)
	tree, err := shortestpath.Search(l.steps*l.breadth, l.sources(o, protect), l.edges)
	if err != nil {
		return nil, fmt.Errorf("seam: %s search: %w", o, err)
	}

	sink, ok := tree.Closest(l.edge(l.steps - 1))
	if !ok {
		return nil, fmt.Errorf("seam: %s search reached no sink", o)
	}

	path := tree.PathTo(sink)
	seam := make(Seam, len(path))
	for i, v := range path {
		seam[i] = v % l.breadth
	}

	return seam, nil
}

// SeamCost returns the total energy of every cell on the seam, including the
// first. The seam must be valid for e.
func SeamCost(e *EnergyMap, s Seam, o Orientation) (float64, error) {
	if e == nil {
		return 0, fmt.Errorf("%w: energy map is nil", ErrInvalidArgument)
	}
	if err := validateShape(e.width, e.height, s, o); err != nil {
		return 0, err
	}

	total := 0.0
	for step, pos := range s {
		if o == Horizontal {
			total += e.At(step, pos)
		} else {
			total += e.At(pos, step)
		}
	}
	return total, nil
}
