// Package wire describes the flat, index-addressed panel representation that
// the external runtime consumes, and moves it in and out of a Storage.
//
// A panel on the wire has no notion of a 2D grid. It is a set of parallel
// arrays:
//
//   - Positions: two float32 per point (x, y) in physical space, y grows upward.
//   - Flags:     one PointFlag set per point.
//   - Connections: unordered point pairs, always stored low index first.
//   - Decorations: one packed decoration code per cell (see package decoration).
//   - Reflection: optional symmetry-pairing table, one partner index per point.
//   - ColoredRegions: 4-tuples (a, b, c, slot) forming triangles over points.
//
// Plus a handful of scalars (grid size, style bitmask, cylinder flag, path
// width scale, symbol colour palette).
//
// Storage:
//
//	Storage is the collaborator that reads and writes typed values and
//	arrays at named Field offsets of one object. Load and Store translate a
//	whole Panel through that interface. An absent field reads as zero or an
//	empty slice; writing an empty slice is the zero-length sentinel that
//	clears a previously populated array.
//
// Errors:
//
//   - ErrShortArray: an array is shorter than its declared count.
//   - ErrNilStorage: Load or Store called with a nil Storage.
package wire
