// Package grid is the dense in-memory model of one panel.
//
// What:
//
//   - Grid is a width×height array of Code values, stored row-major.
//   - The role of a position follows from its parity: (even,even) is an
//     intersection holding wire.PointFlag bits, mixed parity is an edge, and
//     (odd,odd) is a cell holding a packed decoration code.
//   - Edges: 0 is a plain segment, Open is empty background (no segment),
//     any other value is a segment carrying gap, dot or marker flags.
//   - Startpoints and Endpoints are kept apart from the cell codes; the
//     encoder folds them in.
//   - Bounds is the physical extent of the first and last intersection and
//     drives the unit scale. Pillar grids always use 1/width horizontally.
//
// Dimensions are 2N−1 on both axes, or 2N wide for a pillar (cylinder), whose
// last column is the edge that wraps back to column 0.
//
// Canonical order:
//
//	Intersections are numbered from the bottom row up and left to right
//	within a row (CanonicalIndex). Cells are numbered the same way, bottom
//	cell row first (DecorationIndex). Both codec directions use these two functions.
//
// Errors:
//
//   - ErrBadDimensions: non-positive size, or even size on a flat axis.
//   - ErrOutOfRange: coordinate outside [0,width)×[0,height).
//   - ErrWrongRole: symbol call on a non-cell, dot on a cell, gap off an edge.
//
// Complexity: accessors are O(1); Resize and Clone are O(W×H).
package grid
