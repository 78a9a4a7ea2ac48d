package shortestpath

// entry is a (vertex, distance) pair held in the priority queue.
type entry struct {
	v    int
	dist float64
}

// minQueue is a binary min-heap of entries ordered by distance, then vertex.
//
// Stale entries are left in place when a vertex improves; Search skips them on
// extraction once the vertex is settled.
type minQueue []entry

// Len implements heap.Interface.
func (q minQueue) Len() int { return len(q) }

// Less orders by distance and falls back to the vertex index on ties.
func (q minQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].v < q[j].v
}

// Swap implements heap.Interface.
func (q minQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Push implements heap.Interface; x must be an entry.
func (q *minQueue) Push(x interface{}) { *q = append(*q, x.(entry)) }

// Pop implements heap.Interface.
func (q *minQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]

	return item
}
