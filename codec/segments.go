package codec

import (
	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/wire"
)

// segmentEnds returns the intersections edge (x, y) joins. The pillar wrap
// edge reports column w for its right end.
func (e *encoder) segmentEnds(x, y int) (ax, ay, bx, by int) {
	if y%2 == 1 {
		return x, y - 1, x, y + 1
	}
	return x - 1, y, x + 1, y
}

// gapEnds splits the ends of edge (x, y) into the one with the higher
// canonical index and the other. breakGap puts its first point next to the
// high end.
func (e *encoder) gapEnds(x, y int) (hx, hy, lx, ly int) {
	ax, ay, bx, by := e.segmentEnds(x, y)
	if e.loc(ax, ay) > e.loc(bx, by) {
		return ax, ay, bx, by
	}
	return bx, by, ax, ay
}

// mirrorIndex is the canonical index of the mirror of intersection (x, y);
// column w is read as column 0.
func (e *encoder) mirrorIndex(x, y int) int32 {
	if x == e.w {
		x = 0
	}
	mx, my := e.g.Mirror(x, y)
	return e.loc(mx, my)
}

// locateSegment returns the index in e.conns of the connection running along
// edge (x, y), or -1.
func (e *encoder) locateSegment(x, y int) int {
	if !e.g.InBounds(x, y) || grid.RoleOf(x, y) != grid.RoleEdge {
		return -1
	}
	ax, ay, bx, by := e.segmentEnds(x, y)
	want := wire.Connect(e.loc(ax, ay), e.loc(bx, by))
	for i, c := range e.conns {
		if c == want {
			return i
		}
	}
	return -1
}

// breakSegment inserts one point in the middle of edge (x, y), carrying the
// edge's code as its flags, and splits the connection around it.
// It reports false when the edge has no segment.
func (e *encoder) breakSegment(x, y int) (int32, bool) {
	i := e.locateSegment(x, y)
	if i < 0 {
		return -1, false
	}
	c := e.conns[i]
	px, py := e.gridPos(x, y)
	n := e.addPoint(px, py, wire.PointFlag(e.g.At(x, y)))
	e.conns[i] = wire.Connect(c.A, n)
	e.connect(c.B, n)
	return n, true
}

// breakGap inserts two points a quarter segment either side of the middle
// of edge (x, y), both flagged as a gap. The returned point hangs off the
// high end of the old connection and the next one off the low end; nothing
// joins them.
// It reports false when the edge has no segment.
func (e *encoder) breakGap(x, y int) (int32, bool) {
	i := e.locateSegment(x, y)
	if i < 0 {
		return -1, false
	}
	c := e.conns[i]
	ax, ay, bx, by := e.segmentEnds(x, y)
	mx, my := e.gridPos(x, y)
	pax, pay := e.gridPos(ax, ay)
	pbx, pby := e.gridPos(bx, by)
	nearA := [2]float32{mx + (pax-mx)/2, my + (pay-my)/2}
	nearB := [2]float32{mx + (pbx-mx)/2, my + (pby-my)/2}
	if e.loc(ax, ay) != c.A {
		nearA, nearB = nearB, nearA
	}

	f := wire.PointFlag(e.g.At(x, y))
	if !f.Has(wire.Gap) {
		// the mirror of a gap carries no code of its own
		f = wire.Gap | wire.Row
		if y%2 == 1 {
			f = wire.Gap | wire.Column
		}
	}
	n := e.addPoint(nearB[0], nearB[1], f)
	e.addPoint(nearA[0], nearA[1], f)
	e.conns[i] = wire.Connect(c.A, n+1)
	e.connect(c.B, n)
	return n, true
}
