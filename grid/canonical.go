package grid

// NumCanonical returns the number of intersections.
func (g *Grid) NumCanonical() int {
	return ((g.width + 1) / 2) * ((g.height + 1) / 2)
}

// CanonicalIndex returns the wire index of the intersection at (x, y):
// rows counted from the bottom, columns from the left.
// The result is meaningless for positions that are not intersections.
// Complexity: O(1).
func (g *Grid) CanonicalIndex(x, y int) int {
	rows := (g.height - 1) / 2
	cols := (g.width + 1) / 2
	return (rows-y/2)*cols + x/2
}

// CanonicalPoint is the inverse of CanonicalIndex.
func (g *Grid) CanonicalPoint(i int) (x, y int) {
	cols := (g.width + 1) / 2
	return (i % cols) * 2, g.height - 1 - (i/cols)*2
}

// NumDecorations returns the number of cells.
func (g *Grid) NumDecorations() int {
	return (g.width / 2) * (g.height / 2)
}

// DecorationIndex returns the wire index of the cell at (x, y): rows from the
// bottom, columns from the left.
func (g *Grid) DecorationIndex(x, y int) int {
	return ((g.height-2-y)/2)*(g.width/2) + (x-1)/2
}

// DecorationCell is the inverse of DecorationIndex.
func (g *Grid) DecorationCell(i int) (x, y int) {
	cols := g.width / 2
	return (i%cols)*2 + 1, g.height - 2 - (i/cols)*2
}
