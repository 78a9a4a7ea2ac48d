// Package shortestpath implements Dijkstra's algorithm over implicit graphs.
//
// The graph is never stored. Callers describe it with a vertex count, a set of
// source vertices, and an EdgeFunc that appends the outgoing edges of a vertex
// on demand. This keeps memory at O(V) for the distance and predecessor arrays
// plus the heap, regardless of how many edges the graph has.
//
// Several sources may be given at once. Every source is seeded with distance 0,
// which is equivalent to adding a virtual super-source joined to each of them
// by a zero-weight edge.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V) plus O(E) heap entries in the worst case (lazy decrease-key).
//
// Determinism:
//
//   - Heap entries with equal distance are ordered by vertex index.
//   - Relaxation is strict (<), so an equal-cost alternative never replaces a
//     recorded predecessor.
//   - Tree.Closest returns the first candidate with the minimal distance, in the
//     order the candidates are given.
//
// Example:
//
//	tree, err := shortestpath.Search(n, []int{0, 1, 2}, func(v int, dst []shortestpath.Edge) []shortestpath.Edge {
//	    return append(dst, shortestpath.Edge{To: v + 3, Weight: w[v+3]})
//	})
//	if err != nil {
//	    return err
//	}
//	sink, _ := tree.Closest(sinks)
//	path := tree.PathTo(sink)
package shortestpath
