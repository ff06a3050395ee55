package codec

import (
	"fmt"
	"math"

	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/symmetry"
	"github.com/katalvlaran/panelwire/wire"
)

// Decode rebuilds the grid model of p.
//
// The first NumCanonical points are the intersections in canonical order.
// Every edge starts Open and each canonical connection clears its midpoint
// edge to a segment. The remaining points are gaps, edge dots, endpoints and
// glyph geometry; glyph points are dropped. Malformed but tolerable input is
// counted in the Report rather than failing the call.
// Complexity: O(P + C + W×H).
func Decode(ctx PanelContext, p *wire.Panel) (*grid.Grid, Report, error) {
	var rep Report
	if p == nil {
		return nil, rep, wire.ErrNilPanel
	}
	if err := p.Validate(); err != nil {
		return nil, rep, fmt.Errorf("codec.Decode(%s): %w", ctx.ID, err)
	}
	numPoints := p.NumPoints()

	pillar := p.Cylinder
	width := 2*int(p.GridSizeX) - 1
	if pillar {
		width++
	}
	height := 2*int(p.GridSizeY) - 1
	if limit := ctx.maxDimension(); width <= 0 || height <= 0 || width > limit || height > limit {
		side := int(math.Round(math.Sqrt(float64(numPoints))))*2 - 1
		ctx.logf("declared size %dx%d unusable, inferring %dx%d from %d points", width, height, side, side, numPoints)
		width, height, pillar = side, side, false
		rep.DimensionFallback = true
	}

	opts := []grid.Option{}
	if pillar {
		opts = append(opts, grid.WithPillar())
	}
	if ctx.sideExits() {
		opts = append(opts, grid.WithSideExits())
	}
	g, err := grid.New(width, height, opts...)
	if err != nil {
		return nil, rep, fmt.Errorf("codec.Decode(%s): %w", ctx.ID, err)
	}
	n := g.NumCanonical()
	if numPoints < n {
		return nil, rep, fmt.Errorf("codec.Decode(%s): %d points for %d intersections: %w", ctx.ID, numPoints, n, ErrNoPoints)
	}

	x0, y0 := p.Point(0)
	x1, y1 := p.Point(n - 1)
	g.SetBounds(grid.Bounds{
		MinX: min(x0, x1), MaxX: max(x0, x1),
		MinY: min(y0, y1), MaxY: max(y0, y1),
	})

	d := &decoder{ctx: ctx, p: p, g: g, rep: &rep, n: n}
	g.SetSymmetry(d.classify())
	d.intersections()
	d.connections()
	d.extras()
	d.decorations()
	return g, rep, nil
}

type decoder struct {
	ctx PanelContext
	p   *wire.Panel
	g   *grid.Grid
	rep *Report
	n   int
}

// locate maps a physical position to its clamped grid coordinate.
func (d *decoder) locate(px, py float32) (int, int) {
	b := d.g.Bounds()
	x := clamp(steps(px-b.MinX, d.g.UnitWidth()), d.g.Width()-1)
	y := d.g.Height() - 1 - clamp(steps(py-b.MinY, d.g.UnitHeight()), d.g.Height()-1)
	return x, y
}

func (d *decoder) locatePoint(i int) (int, int) {
	return d.locate(d.p.Point(i))
}

// steps counts grid steps of size unit in v; a degenerate unit yields 0.
func steps(v, unit float32) int {
	if unit == 0 || math.IsNaN(float64(unit)) || math.IsInf(float64(unit), 0) {
		return 0
	}
	return int(math.Round(float64(v / unit)))
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}

// classify picks the family that reproduces the reflection table for every
// intersection, falling back to the first-entry heuristic.
func (d *decoder) classify() symmetry.Symmetry {
	refl := d.p.Reflection
	if len(refl) == 0 {
		return symmetry.None
	}
	f := d.g.Frame()
	for _, s := range symmetry.All {
		if !symmetry.Applicable(s, f) {
			continue
		}
		if d.matches(s, f) {
			return s
		}
	}
	d.rep.SymmetryGuessed = true
	_, ya := d.p.Point(0)
	_, yb := d.p.Point(1)
	switch {
	case int(refl[0]) == d.n-1:
		return symmetry.Rotational
	case int(refl[0]) == d.g.Width()/2 && ya == yb:
		return symmetry.Vertical
	}
	return symmetry.Horizontal
}

func (d *decoder) matches(s symmetry.Symmetry, f symmetry.Frame) bool {
	for i := 0; i < d.n; i++ {
		x, y := d.g.CanonicalPoint(i)
		mx, my := symmetry.Reflect(s, f, x, y)
		if !d.g.InBounds(mx, my) || grid.RoleOf(mx, my) != grid.RoleIntersection {
			return false
		}
		if int(d.p.Reflection[i]) != d.g.CanonicalIndex(mx, my) {
			return false
		}
	}
	return true
}

func (d *decoder) intersections() {
	for i := 0; i < d.n; i++ {
		x, y := d.locatePoint(i)
		f := d.p.Flags[i]
		_ = d.g.Set(x, y, grid.Code(f))
		if f.Has(wire.Startpoint) {
			_ = d.g.AddStart(x, y)
		}
	}
}

func (d *decoder) connections() {
	d.g.Fill(grid.RoleEdge, grid.Open)
	numPoints := d.p.NumPoints()
	w := d.g.Width()
	for _, c := range d.p.Connections {
		a, b := int(c.A), int(c.B)
		if a < 0 || b < 0 || a >= numPoints || b >= numPoints {
			d.rep.IgnoredConnections++
			d.ctx.logf("connection (%d,%d) outside %d points", a, b, numPoints)
			continue
		}
		if a >= d.n || b >= d.n {
			// links to gaps, dots and endpoints are read with those points
			continue
		}
		xa, ya := d.locatePoint(a)
		xb, yb := d.locatePoint(b)
		switch {
		case ya == yb && (xa-xb == 2 || xb-xa == 2), xa == xb && (ya-yb == 2 || yb-ya == 2):
			_ = d.g.Set((xa+xb)/2, (ya+yb)/2, 0)
		case d.g.Pillar() && ya == yb && (xa == 0 && xb == w-2 || xb == 0 && xa == w-2):
			_ = d.g.Set(w-1, ya, 0)
		default:
			d.rep.IgnoredConnections++
			d.ctx.logf("connection (%d,%d) joins (%d,%d) and (%d,%d), not adjacent", a, b, xa, ya, xb, yb)
		}
	}
}

// extras reads the points beyond the canonical set.
func (d *decoder) extras() {
	numPoints := d.p.NumPoints()
	linked := make(map[wire.Connection]bool, len(d.p.Connections))
	for _, c := range d.p.Connections {
		linked[wire.Connect(c.A, c.B)] = true
	}

	for i := d.n; i < numPoints; i++ {
		f := d.p.Flags[i]
		if f.Has(wire.NoPoint) && !f.HasAny(wire.Gap|wire.Endpoint) {
			d.rep.GlyphPoints++
			continue
		}
		x, y := d.locatePoint(i)
		if f.Has(wire.Gap) && i+1 < numPoints {
			ax, ay := d.p.Point(i)
			bx, by := d.p.Point(i + 1)
			x, y = d.locate((ax+bx)/2, (ay+by)/2)
			if linked[wire.Connect(int32(i), int32(i+1))] {
				// a gap pair joined to itself is a symmetry wall, not a break
				_ = d.g.Set(x, y, 0)
				d.rep.FakeGaps++
				i++
				continue
			}
			i++
			f = d.p.Flags[i]
		}
		if f.Has(wire.Endpoint) {
			d.endpoint(i, f)
			continue
		}
		_ = d.g.Set(x, y, grid.Code(f))
	}
}

func (d *decoder) endpoint(i int, f wire.PointFlag) {
	partner := int32(-1)
	for _, c := range d.p.Connections {
		if o := c.Other(int32(i)); o >= 0 && int(o) < d.p.NumPoints() {
			partner = o
			break
		}
	}
	if partner < 0 {
		d.rep.OrphanEndpoints++
		d.ctx.logf("endpoint %d has no connection", i)
		return
	}
	ex, ey := d.p.Point(i)
	px, py := d.p.Point(int(partner))
	var dir symmetry.Direction
	if ex < px {
		dir |= symmetry.Left
	}
	if ex > px {
		dir |= symmetry.Right
	}
	if ey < py {
		dir |= symmetry.Down
	}
	if ey > py {
		dir |= symmetry.Up
	}
	x, y := d.locate(px, py)
	_ = d.g.AddEndpoint(grid.Endpoint{X: x, Y: y, Dir: dir, Flags: f})
}

func (d *decoder) decorations() {
	cells := d.g.NumDecorations()
	for i, code := range d.p.Decorations {
		if i >= cells {
			d.rep.ExtraDecorations = len(d.p.Decorations) - cells
			d.ctx.logf("%d decorations for %d cells", len(d.p.Decorations), cells)
			return
		}
		x, y := d.g.DecorationCell(i)
		_ = d.g.Set(x, y, grid.Code(code))
	}
}
