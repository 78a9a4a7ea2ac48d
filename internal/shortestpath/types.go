package shortestpath

import "errors"

// Sentinel errors returned by Search.
var (
	// ErrNoVertices indicates a graph with a non-positive vertex count.
	ErrNoVertices = errors.New("shortestpath: vertex count must be positive")

	// ErrNoSources indicates an empty source set.
	ErrNoSources = errors.New("shortestpath: at least one source is required")

	// ErrSourceOutOfRange indicates a source outside [0, n).
	ErrSourceOutOfRange = errors.New("shortestpath: source vertex out of range")

	// ErrNilEdgeFunc indicates that no edge generator was supplied.
	ErrNilEdgeFunc = errors.New("shortestpath: edge function is nil")

	// ErrTargetOutOfRange indicates the edge generator produced an edge to a
	// vertex outside [0, n).
	ErrTargetOutOfRange = errors.New("shortestpath: edge target out of range")

	// ErrNegativeWeight indicates the edge generator produced a negative weight.
	ErrNegativeWeight = errors.New("shortestpath: negative edge weight encountered")
)

// Edge is a directed edge leaving the vertex it was generated for.
type Edge struct {
	To     int     // destination vertex
	Weight float64 // non-negative cost of traversing the edge
}

// EdgeFunc appends the outgoing edges of v to dst and returns the extended slice.
//
// The same dst buffer is handed back on every call, so implementations must not
// retain it.
type EdgeFunc func(v int, dst []Edge) []Edge
