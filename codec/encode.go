package codec

import (
	"fmt"

	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/glyph"
	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/symmetry"
	"github.com/katalvlaran/panelwire/wire"
)

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	previous        *wire.Panel
	registry        *Registry
	mode            decoration.ColorMode
	decorationsOnly bool
	flash           bool
	pathWidth       float32
}

// WithPrevious supplies the wire state the panel held before this encode.
// It seeds the style, the path width, the symbol palette and the colored
// regions, and is required by WithDecorationsOnly.
func WithPrevious(p *wire.Panel) EncodeOption {
	return func(o *encodeOptions) { o.previous = p }
}

// WithRegistry records the panel in r when it carries custom glyphs.
func WithRegistry(r *Registry) EncodeOption {
	return func(o *encodeOptions) { o.registry = r }
}

// WithColorMode selects how symbol colours are written.
func WithColorMode(m decoration.ColorMode) EncodeOption {
	return func(o *encodeOptions) { o.mode = m }
}

// WithDecorationsOnly keeps the previous points and connections and only
// rewrites decorations and intersection dots.
func WithDecorationsOnly() EncodeOption {
	return func(o *encodeOptions) { o.decorationsOnly = true }
}

// WithFlash lets the panel blink on completion.
func WithFlash() EncodeOption {
	return func(o *encodeOptions) { o.flash = true }
}

// WithPathWidth scales the traced path. 1 leaves the stored scale alone.
func WithPathWidth(w float32) EncodeOption {
	return func(o *encodeOptions) { o.pathWidth = w }
}

// Encode produces the wire form of g. The grid is consumed: starts are
// merged into their cells, treehouse colours are remapped in place, and a
// second Encode of the same grid returns ErrGridConsumed.
//
// Points are emitted in canonical order first, then endpoints, then edge
// dots and gaps, then glyph geometry. Every Connection has A <= B. When the
// grid is symmetric the reflection table holds one partner per point.
// Complexity: O(W×H×C) for C connections, dominated by segment lookups.
func Encode(ctx PanelContext, g *grid.Grid, opts ...EncodeOption) (*wire.Panel, Report, error) {
	var rep Report
	if g == nil {
		return nil, rep, ErrNilGrid
	}
	o := encodeOptions{pathWidth: 1}
	for _, opt := range opts {
		opt(&o)
	}
	prev := o.previous
	if o.decorationsOnly && prev == nil {
		return nil, rep, fmt.Errorf("codec.Encode(%s): %w", ctx.ID, ErrNoPrevious)
	}
	if !g.Consume() {
		return nil, rep, fmt.Errorf("codec.Encode(%s): %w", ctx.ID, ErrGridConsumed)
	}

	e := newEncoder(ctx, g, &rep)
	out := &wire.Panel{
		GridSizeX: int32((e.w + 1) / 2),
		GridSizeY: int32((e.h + 1) / 2),
		Cylinder:  g.Pillar(),
	}
	if prev != nil {
		e.style = prev.Style
		out.PathWidthScale = prev.PathWidthScale
		out.ColoredRegions = append([]int32(nil), prev.ColoredRegions...)
		if prev.SymbolColors != nil {
			sc := *prev.SymbolColors
			out.SymbolColors = &sc
		}
		if g.Resized() && prev.NumColoredRegions() > 0 {
			out.ColoredRegions = e.cover()
		}
	}

	if o.decorationsOnly {
		e.mergeDots(out, prev)
	} else {
		e.intersections()
		e.endpoints()
		e.edges()
		e.glyphs()
		e.finish(out)
	}
	e.decorations(out, &o)

	if o.flash {
		e.style &^= wire.NoBlink
	}
	out.Style = e.style
	if o.pathWidth != 1 {
		out.PathWidthScale = o.pathWidth
	}
	out.NeedsRedraw = true
	return out, rep, nil
}

type encoder struct {
	ctx PanelContext
	g   *grid.Grid
	rep *Report

	w, h       int
	minX, minY float32
	unitW      float32
	unitH      float32
	sym        bool

	buf   glyph.Buffers
	conns []wire.Connection
	refl  []int32
	style wire.Style
}

func newEncoder(ctx PanelContext, g *grid.Grid, rep *Report) *encoder {
	b := g.Bounds()
	return &encoder{
		ctx:   ctx,
		g:     g,
		rep:   rep,
		w:     g.Width(),
		h:     g.Height(),
		minX:  b.MinX,
		minY:  b.MinY,
		unitW: g.UnitWidth(),
		unitH: g.UnitHeight(),
		sym:   g.Symmetry() != symmetry.None,
	}
}

// loc is the canonical index of intersection (x, y); column w is the pillar
// wrap of column 0.
func (e *encoder) loc(x, y int) int32 {
	if x == e.w {
		x = 0
	}
	return int32(e.g.CanonicalIndex(x, y))
}

// mirrorLoc is the canonical index of the mirror of (x, y), or the point
// itself when the mirror is not an intersection.
func (e *encoder) mirrorLoc(x, y int) int32 {
	mx, my := e.g.Mirror(x, y)
	if !e.g.InBounds(mx, my) || grid.RoleOf(mx, my) != grid.RoleIntersection {
		return e.loc(x, y)
	}
	return e.loc(mx, my)
}

// gridPos is the physical position of grid coordinate (x, y).
func (e *encoder) gridPos(x, y int) (float32, float32) {
	return e.minX + float32(x)*e.unitW, e.minY + float32(e.h-1-y)*e.unitH
}

// addPoint appends one point, initially its own mirror, and returns its index.
func (e *encoder) addPoint(x, y float32, f wire.PointFlag) int32 {
	i := int32(e.buf.Len())
	e.buf.Positions = append(e.buf.Positions, x, y)
	e.buf.Flags = append(e.buf.Flags, f)
	e.refl = append(e.refl, i)
	return i
}

func (e *encoder) pair(a, b int32) {
	e.refl[a], e.refl[b] = b, a
}

func (e *encoder) connect(a, b int32) {
	e.conns = append(e.conns, wire.Connect(a, b))
}

func (e *encoder) noteDot(f wire.PointFlag) {
	if !f.Has(wire.Dot) {
		return
	}
	e.style |= wire.HasDots
	if f.HasAny(wire.DotIsBlue | wire.DotIsOrange) {
		e.style |= wire.Is2Color
	}
}

// cover is two triangles spanning the whole panel.
func (e *encoder) cover() []int32 {
	return []int32{
		0, e.loc(e.w-1, 0), e.loc(0, 0), 0,
		e.loc(e.w-1, e.h-1), e.loc(e.w-1, 0), 0, 0,
	}
}

func (e *encoder) intersections() {
	g := e.g
	for _, s := range g.Startpoints() {
		_ = g.Or(s.X, s.Y, grid.Code(wire.Startpoint))
	}
	e.style &^= wire.HasDots

	for y := e.h - 1; y >= 0; y -= 2 {
		for x := 0; x < e.w; x += 2 {
			code := wire.PointFlag(g.At(x, y))
			f := code
			if !f.Has(wire.NoPoint) {
				f |= wire.Intersection
			}
			px, py := e.gridPos(x, y)
			i := e.addPoint(px, py, f)
			e.noteDot(code)

			if y > 0 && g.At(x, y-1) != grid.Open {
				e.connect(e.loc(x, y-2), i)
			}
			if x > 0 && g.At(x-1, y) != grid.Open {
				e.connect(e.loc(x-2, y), i)
			}
			if e.sym {
				e.refl[i] = e.mirrorLoc(x, y)
			}
		}
		if g.Pillar() && g.At(e.w-1, y) != grid.Open {
			e.connect(e.loc(0, y), e.loc(e.w-2, y))
		}
	}
}

func (e *encoder) endpoints() {
	g := e.g
	eps := g.Endpoints()
	if e.sym {
		// downstream pairs exits by index parity
		for i := 0; i+1 < len(eps); i += 2 {
			mx, my := g.Mirror(eps[i].X, eps[i].Y)
			for j := i + 1; j < len(eps); j++ {
				if eps[j].X == mx && eps[j].Y == my {
					eps[i+1], eps[j] = eps[j], eps[i+1]
					break
				}
			}
		}
	}

	endDist := float32(0.05)
	if g.Pillar() {
		endDist = 0.03
	}
	index := make([]int32, len(eps))
	breaks := make([]int32, len(eps))
	for i, ep := range eps {
		index[i], breaks[i] = -1, -1
		var anchor int32
		if ep.X%2 == 1 || ep.Y%2 == 1 {
			n, ok := e.breakSegment(ep.X, ep.Y)
			if !ok {
				e.rep.SkippedEndpoints++
				e.ctx.logf("endpoint (%d,%d) sits on an edge with no segment", ep.X, ep.Y)
				continue
			}
			anchor, breaks[i] = n, n
		} else {
			anchor = e.loc(ep.X, ep.Y)
		}
		px, py := e.gridPos(ep.X, ep.Y)
		if ep.Dir&symmetry.Left != 0 {
			px -= endDist
		}
		if ep.Dir&symmetry.Right != 0 {
			px += endDist
		}
		if ep.Dir&symmetry.Up != 0 {
			py += endDist
		}
		if ep.Dir&symmetry.Down != 0 {
			py -= endDist
		}
		index[i] = e.addPoint(px, py, ep.Flags)
		e.connect(anchor, index[i])
	}

	if !e.sym {
		return
	}
	for i, ep := range eps {
		if index[i] < 0 {
			continue
		}
		mx, my := g.Mirror(ep.X, ep.Y)
		for j, other := range eps {
			if other.X == mx && other.Y == my && index[j] >= 0 {
				e.refl[index[i]] = index[j]
				if breaks[i] >= 0 && breaks[j] >= 0 {
					e.refl[breaks[i]] = breaks[j]
				}
				break
			}
		}
	}
}

// edges breaks the segments that carry dots and gaps.
func (e *encoder) edges() {
	g := e.g
	for y := e.h - 1; y >= 0; y-- {
		for x := 0; x < e.w; x++ {
			if grid.RoleOf(x, y) != grid.RoleEdge {
				continue
			}
			c := g.At(x, y)
			if c == 0 || c == grid.Open {
				continue
			}
			f := wire.PointFlag(c)
			e.noteDot(f)
			if e.locateSegment(x, y) < 0 {
				continue
			}
			if f.Has(wire.Gap) {
				e.gap(x, y)
				continue
			}
			if f == wire.Row || f == wire.Column {
				// bare mirror marker
				continue
			}
			n, ok := e.breakSegment(x, y)
			if !ok || !e.sym {
				continue
			}
			mx, my := g.Mirror(x, y)
			if mx == x && my == y {
				continue
			}
			m, ok := e.breakSegment(mx, my)
			if !ok {
				e.rep.SkippedBreaks++
				e.ctx.logf("mirror (%d,%d) of edge (%d,%d) has no segment", mx, my, x, y)
				continue
			}
			e.pair(n, m)
		}
	}
}

func (e *encoder) gap(x, y int) {
	n, ok := e.breakGap(x, y)
	if !ok || !e.sym {
		return
	}
	hx, hy, lx, ly := e.gapEnds(x, y)
	mx, my := e.g.Mirror(x, y)
	if mx == x && my == y {
		// an edge on the axis swaps its halves or keeps them
		if e.mirrorIndex(hx, hy) == e.loc(lx, ly) {
			e.pair(n, n+1)
		}
		return
	}
	m, ok := e.breakGap(mx, my)
	if !ok {
		e.rep.SkippedBreaks++
		e.ctx.logf("mirror (%d,%d) of gap (%d,%d) has no segment", mx, my, x, y)
		return
	}
	// n sits next to the high end of its edge, m next to the high end of the mirror
	mhx, mhy, _, _ := e.gapEnds(mx, my)
	if e.mirrorIndex(hx, hy) == e.loc(mhx, mhy) {
		e.pair(n, m)
		e.pair(n+1, m+1)
		return
	}
	e.pair(n, m+1)
	e.pair(n+1, m)
}

// glyphs renders custom kinds one kind at a time, top row first.
func (e *encoder) glyphs() {
	pl := glyph.Placement{MinX: e.minX, MinY: e.minY, UnitW: e.unitW, UnitH: e.unitH, Height: e.h}
	for _, k := range decoration.CustomKinds {
		for y := 1; y < e.h; y += 2 {
			for x := 1; x < e.w; x += 2 {
				s := decoration.Unpack(int32(e.g.At(x, y)))
				if s.Kind != k {
					continue
				}
				before := e.buf.Len()
				if !glyph.Render(&e.buf, s, x, y, pl) {
					e.rep.FailedGlyphs++
					e.ctx.logf("no glyph for %v at (%d,%d)", k, x, y)
					continue
				}
				for i := before; i < e.buf.Len(); i++ {
					e.refl = append(e.refl, int32(i))
				}
				e.rep.GlyphPoints += e.buf.Len() - before
			}
		}
	}
}

// finish moves the buffers into out and settles the reflection table.
func (e *encoder) finish(out *wire.Panel) {
	out.Positions = e.buf.Positions
	out.Flags = e.buf.Flags
	out.Connections = e.conns
	if len(e.buf.Regions) > 0 {
		out.ColoredRegions = e.buf.Regions
	}

	switch {
	case e.ctx.noSymmetry() && e.g.Symmetry() == symmetry.None:
		e.style &^= wire.Symmetrical
		out.Reflection = nil
	case e.sym && len(e.refl) > 0:
		e.style |= wire.Symmetrical
		out.Reflection = e.refl
	default:
		e.style &^= wire.Symmetrical
		out.Reflection = nil
	}
}

// mergeDots keeps the previous points and copies intersection dots into
// their flags.
func (e *encoder) mergeDots(out, prev *wire.Panel) {
	out.Positions = append([]float32(nil), prev.Positions...)
	out.Flags = append([]wire.PointFlag(nil), prev.Flags...)
	out.Connections = append([]wire.Connection(nil), prev.Connections...)
	out.Reflection = append([]int32(nil), prev.Reflection...)
	if len(out.Reflection) == 0 {
		out.Reflection = nil
	}
	for y := 0; y < e.h; y += 2 {
		for x := 0; x < e.w; x += 2 {
			c := wire.PointFlag(e.g.At(x, y))
			if !c.Has(wire.Dot) {
				continue
			}
			if i := e.g.CanonicalIndex(x, y); i < len(out.Flags) {
				if !c.Has(wire.NoPoint) {
					c |= wire.Intersection
				}
				out.Flags[i] = c
				e.style |= wire.HasDots
			}
		}
	}
}
