// Package seam implements content-aware image shrinking by seam carving.
//
// A seam is an 8-connected path of pixels that crosses the image from one edge
// to the opposite edge, taking exactly one pixel per row (vertical seam) or per
// column (horizontal seam). Removing the seam with the lowest total energy
// shrinks the image by one column or row while discarding as little visible
// detail as possible.
//
// # Energy
//
// Every pixel gets a non-negative energy. Border pixels are fixed at
// BorderEnergy (1000). An interior pixel (x, y) has energy
//
//	sqrt(Δx² + Δy²)
//
// where Δx² is the sum over R, G, B of the squared difference between pixels
// (x-1, y) and (x+1, y), and Δy² the same for (x, y-1) and (x, y+1).
//
// # Seam Search
//
// The energy map induces an implicit DAG: each cell points to the (up to)
// three cells one step further along the traversal axis, with the destination
// energy as the edge weight. Every cell on the starting edge is a source and
// every cell on the opposite edge is a sink. FindSeam runs a multi-source
// Dijkstra over that graph (package shortestpath) and returns the path to the
// closest sink. Both orientations share one search through an axis-swapping
// lattice.
//
// Ties between sinks are broken by index: the sink with the smallest column
// (vertical) or row (horizontal) wins. Ties inside the search resolve toward
// the lower vertex index, so results are fully deterministic.
//
// # Carver
//
// Carver owns a Grid, its EnergyMap and the two cached minimum seams. Each
// removal builds a complete new snapshot of all four and swaps it in only
// after validation and recomputation succeed, so a rejected seam never
// changes the Carver. All failures are ErrInvalidArgument.
//
// Carver is not safe for concurrent use.
//
// # Coordinate System
//
// (0,0) is the top-left pixel, X grows rightward and Y grows downward.
package seam
