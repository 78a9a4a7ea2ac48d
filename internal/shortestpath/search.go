package shortestpath

import (
	"container/heap"
	"fmt"
	"math"
)

// Tree is the shortest-path forest produced by Search. Each reachable vertex
// records its distance from the nearest source and its predecessor on that path.
type Tree struct {
	dist []float64
	prev []int
}

// Search runs Dijkstra's algorithm from every vertex in sources at once.
//
// Preconditions (checked in order):
//  1. n > 0 (ErrNoVertices).
//  2. edges is non-nil (ErrNilEdgeFunc).
//  3. sources is non-empty (ErrNoSources) and every source is in [0, n)
//     (ErrSourceOutOfRange).
//
// Edges are generated lazily when their tail vertex is settled, so an edge to
// a vertex outside [0, n) or with a negative weight is reported only when it
// is first produced (ErrTargetOutOfRange, ErrNegativeWeight).
func Search(n int, sources []int, edges EdgeFunc) (*Tree, error) {
	if n <= 0 {
		return nil, ErrNoVertices
	}
	if edges == nil {
		return nil, ErrNilEdgeFunc
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	r := &runner{
		n:       n,
		edges:   edges,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		settled: make([]bool, n),
		pq:      make(minQueue, 0, len(sources)),
	}
	if err := r.init(sources); err != nil {
		return nil, err
	}
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Tree{dist: r.dist, prev: r.prev}, nil
}

// runner holds the mutable state of a single search.
type runner struct {
	n       int
	edges   EdgeFunc
	dist    []float64 // best known distance; +Inf until reached
	prev    []int     // predecessor on the best path; -1 for sources and unreached vertices
	settled []bool    // true once dist[v] is final
	pq      minQueue
	buf     []Edge // reused edge buffer
}

// init sets every distance to +Inf, then seeds each source with distance 0.
func (r *runner) init(sources []int) error {
	for v := 0; v < r.n; v++ {
		r.dist[v] = math.Inf(1)
		r.prev[v] = -1
	}

	for _, s := range sources {
		if s < 0 || s >= r.n {
			return fmt.Errorf("%w: %d not in [0,%d)", ErrSourceOutOfRange, s, r.n)
		}
		if r.dist[s] == 0 {
			continue // duplicate source
		}
		r.dist[s] = 0
		r.pq = append(r.pq, entry{v: s})
	}
	heap.Init(&r.pq)

	return nil
}

// process extracts vertices in order of distance until the heap drains.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(entry)
		if r.settled[item.v] {
			continue // stale entry
		}
		r.settled[item.v] = true

		if err := r.relax(item.v); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve every vertex adjacent to the settled vertex u.
func (r *runner) relax(u int) error {
	r.buf = r.edges(u, r.buf[:0])

	for _, e := range r.buf {
		if e.To < 0 || e.To >= r.n {
			return fmt.Errorf("%w: edge %d→%d with n=%d", ErrTargetOutOfRange, u, e.To, r.n)
		}
		if e.Weight < 0 || math.IsNaN(e.Weight) {
			return fmt.Errorf("%w: edge %d→%d weight=%g", ErrNegativeWeight, u, e.To, e.Weight)
		}
		if r.settled[e.To] {
			continue
		}

		nd := r.dist[u] + e.Weight
		if nd >= r.dist[e.To] {
			continue
		}
		r.dist[e.To] = nd
		r.prev[e.To] = u
		heap.Push(&r.pq, entry{v: e.To, dist: nd})
	}

	return nil
}

// Len returns the number of vertices the tree was built over.
func (t *Tree) Len() int { return len(t.dist) }

// DistTo returns the distance from the nearest source to v, or +Inf when v is
// unreachable or out of range.
func (t *Tree) DistTo(v int) float64 {
	if v < 0 || v >= len(t.dist) {
		return math.Inf(1)
	}
	return t.dist[v]
}

// HasPathTo reports whether v is reachable from any source.
func (t *Tree) HasPathTo(v int) bool {
	return !math.IsInf(t.DistTo(v), 1)
}

// PathTo returns the vertices on the shortest path ending at v, source first.
// It returns nil when v is unreachable.
func (t *Tree) PathTo(v int) []int {
	if !t.HasPathTo(v) {
		return nil
	}

	n := 0
	for u := v; u != -1; u = t.prev[u] {
		n++
	}
	path := make([]int, n)
	for u := v; u != -1; u = t.prev[u] {
		n--
		path[n] = u
	}

	return path
}

// Closest returns the first vertex in candidates with the smallest finite
// distance. ok is false when none of the candidates is reachable.
func (t *Tree) Closest(candidates []int) (v int, ok bool) {
	best := math.Inf(1)
	v = -1
	for _, c := range candidates {
		if d := t.DistTo(c); d < best {
			best = d
			v = c
		}
	}

	return v, v != -1
}
