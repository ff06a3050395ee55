package glyph

import (
	"math"

	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/wire"
)

// Buffers accumulates points and colored-region triangles. Positions and
// Flags are the panel's point arrays, so triangle indices are absolute.
type Buffers struct {
	Positions []float32
	Flags     []wire.PointFlag
	Regions   []int32
}

// Len returns the number of points held.
func (b *Buffers) Len() int { return len(b.Flags) }

// Placement maps grid steps onto panel space.
type Placement struct {
	MinX, MinY   float32
	UnitW, UnitH float32
	Height       int
}

// Render appends the glyph for s centred on cell (x, y).
// It reports false, leaving b untouched, when s has no geometry.
func Render(b *Buffers, s decoration.Symbol, x, y int, pl Placement) bool {
	t, ok := Lookup(s)
	if !ok {
		return false
	}
	place(b, t, x, y, pl)
	return true
}

// place rotates t about the unit square centre and stamps it onto the 2×2
// step box whose bottom-left intersection is (x-1, y+1).
func place(b *Buffers, t Template, x, y int, pl Placement) {
	base := int32(b.Len())
	sin, cos := math.Sincos(t.Angle * math.Pi / 180)
	for i := 0; i+1 < len(t.Points); i += 2 {
		px, py := float64(t.Points[i]), float64(t.Points[i+1])
		if t.Angle != 0 {
			dx, dy := px-0.5, py-0.5
			px = 0.5 + dx*cos - dy*sin
			py = 0.5 + dx*sin + dy*cos
		}
		wx := pl.MinX + (float32(x-1)+2*float32(px))*pl.UnitW
		wy := pl.MinY + (float32(pl.Height-1-(y+1))+2*float32(py))*pl.UnitH
		b.Positions = append(b.Positions, wx, wy)
		b.Flags = append(b.Flags, wire.NoPoint)
	}
	for i, v := range t.Tris {
		if i%4 == 3 {
			b.Regions = append(b.Regions, v)
			continue
		}
		b.Regions = append(b.Regions, v+base)
	}
}
