package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/panelwire/codec"
	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/symmetry"
	"github.com/katalvlaran/panelwire/wire"
)

var plain = codec.PanelContext{ID: 0x00182}

func encode(t *testing.T, g *grid.Grid, opts ...codec.EncodeOption) (*wire.Panel, codec.Report) {
	t.Helper()
	p, rep, err := codec.Encode(plain, g, opts...)
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	return p, rep
}

func decode(t *testing.T, p *wire.Panel) (*grid.Grid, codec.Report) {
	t.Helper()
	g, rep, err := codec.Decode(plain, p)
	require.NoError(t, err)
	return g, rep
}

func hasConnection(p *wire.Panel, a, b int32) bool {
	want := wire.Connect(a, b)
	for _, c := range p.Connections {
		if c == want {
			return true
		}
	}
	return false
}

func assertLowHigh(t *testing.T, p *wire.Panel) {
	t.Helper()
	for _, c := range p.Connections {
		assert.LessOrEqual(t, c.A, c.B)
		assert.Less(t, int(c.B), p.NumPoints())
	}
}

// TestEncode_BlockedEdge blocks one vertical edge of a 5×5 intersection grid.
func TestEncode_BlockedEdge(t *testing.T) {
	g, err := grid.New(9, 9)
	require.NoError(t, err)
	require.NoError(t, g.AddStart(0, 0))
	require.NoError(t, g.AddEndpoint(grid.Endpoint{
		X: 8, Y: 8, Dir: symmetry.Down | symmetry.Right, Flags: wire.Endpoint | wire.Row,
	}))
	require.NoError(t, g.Set(4, 5, grid.Open))

	p, _ := encode(t, g)
	assert.Equal(t, int32(5), p.GridSizeX)
	assert.Equal(t, int32(5), p.GridSizeY)
	// 25 intersections and one exit
	require.Equal(t, 26, p.NumPoints())
	// 40 edges less the blocked one, plus the exit link
	assert.Equal(t, 40, p.NumConnections())
	assertLowHigh(t, p)

	top, bottom := int32(g.CanonicalIndex(4, 4)), int32(g.CanonicalIndex(4, 6))
	assert.False(t, hasConnection(p, top, bottom))
	assert.True(t, hasConnection(p, int32(g.CanonicalIndex(4, 2)), top))
	assert.True(t, hasConnection(p, int32(g.CanonicalIndex(4, 8)), bottom))

	start := g.CanonicalIndex(0, 0)
	assert.Equal(t, wire.Startpoint|wire.Intersection, p.Flags[start])

	corner := int32(g.CanonicalIndex(8, 8))
	assert.True(t, hasConnection(p, corner, 25))
	x, y := p.Point(25)
	assert.InDelta(t, 0.95, x, 1e-6)
	assert.InDelta(t, 0.05, y, 1e-6)
	assert.Nil(t, p.Reflection)
	assert.True(t, p.NeedsRedraw)

	back, rep := decode(t, p)
	assert.Zero(t, rep.IgnoredConnections)
	assert.Equal(t, grid.Open, back.At(4, 5))
	assert.Equal(t, grid.Code(0), back.At(4, 3))
	assert.Equal(t, []grid.Point{{X: 0, Y: 0}}, back.Startpoints())
	require.Len(t, back.Endpoints(), 1)
	ep := back.Endpoints()[0]
	assert.Equal(t, 8, ep.X)
	assert.Equal(t, 8, ep.Y)
	assert.Equal(t, symmetry.Down|symmetry.Right, ep.Dir)
}

func TestEncode_Rotational(t *testing.T) {
	g, err := grid.New(7, 7, grid.WithSymmetry(symmetry.Rotational))
	require.NoError(t, err)
	require.NoError(t, g.SetSymbol(1, 1, decoration.New(decoration.Stone, decoration.Black)))
	mx, my := g.Mirror(1, 1)
	assert.Equal(t, 5, mx)
	assert.Equal(t, 5, my)
	require.NoError(t, g.SetSymbol(mx, my, decoration.New(decoration.Stone, decoration.White)))
	require.NoError(t, g.AddStart(0, 6))
	require.NoError(t, g.AddExit(6, 0))

	p, _ := encode(t, g)
	n := g.NumCanonical()
	require.Len(t, p.Reflection, p.NumPoints())
	assert.Equal(t, int32(n-1), p.Reflection[0])
	assert.Equal(t, int32(0), p.Reflection[n-1])
	assert.True(t, p.Style.Has(wire.Symmetrical))
	assert.True(t, p.Style.Has(wire.HasStones))
	// the lone exit has no mirror and pairs with itself
	assert.Equal(t, int32(n), p.Reflection[n])

	back, rep := decode(t, p)
	assert.False(t, rep.SymmetryGuessed)
	assert.Equal(t, symmetry.Rotational, back.Symmetry())
	s, err := back.Symbol(5, 5)
	require.NoError(t, err)
	assert.Equal(t, decoration.White, s.Color)
}

// TestEncode_Pillar checks the unit width and the wrap connection per row.
func TestEncode_Pillar(t *testing.T) {
	g, err := grid.New(12, 5, grid.WithPillar(), grid.WithBounds(grid.Bounds{MinX: 0.3, MaxX: 0.6, MinY: 0.2, MaxY: 0.8}))
	require.NoError(t, err)
	assert.InDelta(t, 1.0/12, g.UnitWidth(), 1e-7)
	require.NoError(t, g.Set(11, 2, grid.Open))

	p, _ := encode(t, g)
	assert.Equal(t, int32(6), p.GridSizeX)
	assert.True(t, p.Cylinder)
	assertLowHigh(t, p)
	for _, y := range []int{0, 4} {
		assert.True(t, hasConnection(p, int32(g.CanonicalIndex(0, y)), int32(g.CanonicalIndex(10, y))), "row %d", y)
	}
	assert.False(t, hasConnection(p, int32(g.CanonicalIndex(0, 2)), int32(g.CanonicalIndex(10, 2))))
	// 3 rows × (5 inner + 1 wrap) + 6 columns × 2, one wrap blocked
	assert.Equal(t, 29, p.NumConnections())

	back, _ := decode(t, p)
	assert.True(t, back.Pillar())
	assert.Equal(t, 12, back.Width())
	assert.InDelta(t, 1.0/12, back.UnitWidth(), 1e-7)
	assert.Equal(t, grid.Code(0), back.At(11, 0))
	assert.Equal(t, grid.Open, back.At(11, 2))
}

func TestRoundTrip(t *testing.T) {
	g, err := grid.New(7, 7)
	require.NoError(t, err)
	require.NoError(t, g.SetSymbol(1, 1, decoration.New(decoration.Stone, decoration.Black)))
	require.NoError(t, g.SetSymbol(3, 5, decoration.New(decoration.Star, decoration.Orange)))
	require.NoError(t, g.SetShape(5, 3, 0x0660, true, false, decoration.Yellow))
	require.NoError(t, g.PlaceDot(2, 3, decoration.Black))
	require.NoError(t, g.PlaceDot(4, 4, decoration.Blue))
	require.NoError(t, g.PlaceGap(3, 2))
	require.NoError(t, g.Set(5, 0, grid.Open))
	require.NoError(t, g.AddStart(0, 6))
	require.NoError(t, g.AddExit(6, 0))
	want := g.Clone()

	p, _ := encode(t, g)
	assertLowHigh(t, p)
	assert.True(t, p.Style.Has(wire.HasDots|wire.Is2Color|wire.HasStones|wire.HasStars|wire.HasShapers))
	// 16 intersections, the exit, the edge dot and two gap halves
	require.Equal(t, 20, p.NumPoints())

	back, rep := decode(t, p)
	assert.Equal(t, codec.Report{}, rep)
	assert.Equal(t, want.Startpoints(), back.Startpoints())
	assert.Equal(t, want.Endpoints(), back.Endpoints())
	assert.Equal(t, want.Symmetry(), back.Symmetry())
	assert.Equal(t, want.ToDocument().Symbols, back.ToDocument().Symbols)
	assert.Equal(t, want.ToDocument().Open, back.ToDocument().Open)

	assert.Equal(t, grid.Code(wire.Gap|wire.Row), back.At(3, 2))
	assert.Equal(t, grid.Code(wire.Dot|wire.Column), back.At(2, 3))
	assert.Equal(t, grid.Code(wire.Dot|wire.DotIsBlue|wire.Intersection), back.At(4, 4))
	assert.Equal(t, grid.Code(0), back.At(1, 0))
}

// TestParity checks every decoded position holds a code of its role.
func TestParity(t *testing.T) {
	g, err := grid.New(7, 5)
	require.NoError(t, err)
	require.NoError(t, g.SetSymbol(3, 1, decoration.NewTriangle(2, decoration.Orange)))
	require.NoError(t, g.PlaceDot(1, 2, decoration.Black))
	require.NoError(t, g.PlaceGap(6, 1))
	p, _ := encode(t, g)
	back, _ := decode(t, p)

	const edgeBits = grid.Code(wire.Dot | wire.DotIsBlue | wire.DotIsOrange | wire.DotIsInvisible | wire.Gap | wire.Row | wire.Column)
	for y := 0; y < back.Height(); y++ {
		for x := 0; x < back.Width(); x++ {
			c := back.At(x, y)
			switch grid.RoleOf(x, y) {
			case grid.RoleIntersection:
				assert.True(t, wire.PointFlag(c).Has(wire.Intersection), "(%d,%d)", x, y)
			case grid.RoleEdge:
				assert.True(t, c == grid.Open || c&^edgeBits == 0, "(%d,%d)=%#x", x, y, c)
			case grid.RoleCell:
				assert.NotEqual(t, decoration.KindUnknown, decoration.Unpack(int32(c)).Kind, "(%d,%d)", x, y)
			}
		}
	}
}

// TestGap_Symmetric re-encodes a decoded mirrored gap and expects the same wiring.
func TestGap_Symmetric(t *testing.T) {
	g, err := grid.New(7, 7, grid.WithSymmetry(symmetry.Vertical))
	require.NoError(t, err)
	require.NoError(t, g.PlaceGap(1, 2))

	first, _ := encode(t, g)
	require.Equal(t, 20, first.NumPoints())
	// near (2,2) pairs with near (4,2)
	assert.Equal(t, int32(19), first.Reflection[16])
	assert.Equal(t, int32(18), first.Reflection[17])
	for i := 16; i < 20; i++ {
		assert.Equal(t, wire.Gap|wire.Row, first.Flags[i])
	}

	back, _ := decode(t, first)
	assert.Equal(t, symmetry.Vertical, back.Symmetry())
	assert.Equal(t, grid.Code(wire.Gap|wire.Row), back.At(1, 2))
	assert.Equal(t, grid.Code(wire.Gap|wire.Row), back.At(5, 2))

	second, rep := encode(t, back)
	assert.Zero(t, rep.SkippedBreaks)
	assert.Equal(t, first.Connections, second.Connections)
	assert.Equal(t, first.Flags, second.Flags)
	assert.Equal(t, first.Reflection, second.Reflection)
}

func TestGap_OnEveryEdge(t *testing.T) {
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if grid.RoleOf(x, y) != grid.RoleEdge {
				continue
			}
			g, err := grid.New(5, 5)
			require.NoError(t, err)
			require.NoError(t, g.PlaceGap(x, y))
			p, _ := encode(t, g)
			back, _ := decode(t, p)
			assert.True(t, wire.PointFlag(back.At(x, y)).Has(wire.Gap), "gap (%d,%d)", x, y)
		}
	}
}

func TestEncode_Consumed(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	_, _, err = codec.Encode(plain, g)
	require.NoError(t, err)
	_, _, err = codec.Encode(plain, g)
	assert.ErrorIs(t, err, codec.ErrGridConsumed)

	_, _, err = codec.Encode(plain, nil)
	assert.ErrorIs(t, err, codec.ErrNilGrid)

	fresh, err := grid.New(3, 3)
	require.NoError(t, err)
	_, _, err = codec.Encode(plain, fresh, codec.WithDecorationsOnly())
	assert.ErrorIs(t, err, codec.ErrNoPrevious)
	assert.False(t, fresh.Consumed())
}

func TestEncode_Glyphs(t *testing.T) {
	g, err := grid.New(5, 5)
	require.NoError(t, err)
	require.NoError(t, g.SetSymbol(1, 1, decoration.NewArrow(1, 2, decoration.Black)))
	require.NoError(t, g.SetSymbol(3, 3, decoration.NewCustom(decoration.Dice, 0, decoration.Black)))
	reg := codec.NewRegistry()

	p, rep := encode(t, g, codec.WithRegistry(reg))
	assert.Equal(t, 10, rep.GlyphPoints)
	assert.Equal(t, 1, rep.FailedGlyphs)
	assert.Equal(t, 9+10, p.NumPoints())
	assert.Equal(t, 6, p.NumColoredRegions())
	for _, f := range p.Flags[9:] {
		assert.Equal(t, wire.NoPoint, f)
	}
	assert.True(t, p.Style.Has(wire.HasTriangles|wire.HasStones))
	assert.Equal(t, []codec.CustomPanel{{ID: plain.ID}}, reg.List())

	back, drep := decode(t, p)
	assert.Equal(t, 10, drep.GlyphPoints)
	s, err := back.Symbol(1, 1)
	require.NoError(t, err)
	assert.Equal(t, decoration.Arrow, s.Kind)
}

func TestEncode_Previous(t *testing.T) {
	prev := &wire.Panel{
		Style:          wire.Symmetrical | wire.NoBlink | wire.HasStars,
		PathWidthScale: 0.8,
		ColoredRegions: []int32{0, 1, 2, 0},
		SymbolColors:   &wire.SymbolColors{Push: 1, Slots: make([]wire.RGBA, 5)},
	}

	t.Run("carry", func(t *testing.T) {
		g, err := grid.New(3, 3)
		require.NoError(t, err)
		p, _ := encode(t, g, codec.WithPrevious(prev))
		assert.Equal(t, prev.ColoredRegions, p.ColoredRegions)
		assert.Equal(t, float32(0.8), p.PathWidthScale)
		assert.True(t, p.Style.Has(wire.NoBlink))
		assert.False(t, p.Style.Has(wire.Symmetrical))
		assert.False(t, p.Style.Has(wire.HasStars))
		assert.Nil(t, p.Decorations)
	})

	t.Run("flash and width", func(t *testing.T) {
		g, err := grid.New(3, 3)
		require.NoError(t, err)
		p, _ := encode(t, g, codec.WithPrevious(prev), codec.WithFlash(), codec.WithPathWidth(0.5))
		assert.False(t, p.Style.Has(wire.NoBlink))
		assert.Equal(t, float32(0.5), p.PathWidthScale)
	})

	t.Run("resized cover", func(t *testing.T) {
		g, err := grid.New(3, 3)
		require.NoError(t, err)
		require.NoError(t, g.Resize(5, 5))
		p, _ := encode(t, g, codec.WithPrevious(prev))
		assert.Equal(t, []int32{0, 8, 6, 0, 2, 8, 0, 0}, p.ColoredRegions)
	})
}

func TestEncode_NoSymmetryPanel(t *testing.T) {
	prev := &wire.Panel{Style: wire.Symmetrical}
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	p, _, err := codec.Encode(codec.PanelContext{ID: 0x01D3F}, g, codec.WithPrevious(prev))
	require.NoError(t, err)
	assert.Nil(t, p.Reflection)
	assert.False(t, p.Style.Has(wire.Symmetrical))
}

func TestEncode_DecorationsOnly(t *testing.T) {
	g, err := grid.New(5, 5)
	require.NoError(t, err)
	prev, _ := encode(t, g)

	edit, _ := decode(t, prev)
	require.NoError(t, edit.PlaceDot(2, 2, decoration.Black))
	require.NoError(t, edit.SetSymbol(1, 1, decoration.New(decoration.Eraser, decoration.White)))

	full, _ := encode(t, edit.Clone())
	p, _ := encode(t, edit, codec.WithPrevious(prev), codec.WithDecorationsOnly())
	assert.Equal(t, prev.Positions, p.Positions)
	assert.Equal(t, prev.Connections, p.Connections)
	i := edit.CanonicalIndex(2, 2)
	assert.Equal(t, wire.Dot|wire.Intersection, p.Flags[i])
	assert.Equal(t, full.Flags[i], p.Flags[i])
	assert.True(t, p.Style.Has(wire.HasDots|wire.HasErasers))
	require.Len(t, p.Decorations, 4)
	assert.Equal(t, make([]int32, 4), p.DecorationFlags)
}

func TestEncode_ColorModes(t *testing.T) {
	build := func() *grid.Grid {
		g, err := grid.New(3, 3)
		require.NoError(t, err)
		require.NoError(t, g.SetSymbol(1, 1, decoration.New(decoration.Stone, decoration.Green)))
		return g
	}

	p, _ := encode(t, build(), codec.WithColorMode(decoration.Treehouse))
	// green moves to slot 6
	assert.Equal(t, decoration.New(decoration.Stone, decoration.Cyan).Code(), p.Decorations[0])
	require.Len(t, p.DecorationColors, 1)
	assert.Equal(t, decoration.Treehouse.Palette(), p.SymbolColors)

	p, _ = encode(t, build(), codec.WithColorMode(decoration.Alternate))
	assert.Nil(t, p.DecorationColors)
	assert.Equal(t, &wire.SymbolColors{Push: 1}, p.SymbolColors)

	p, _ = encode(t, build(), codec.WithColorMode(decoration.WriteColors))
	assert.Equal(t, []wire.RGBA{{0, 1, 0, 1}}, p.DecorationColors)

	p, _ = encode(t, build(), codec.WithPrevious(&wire.Panel{DecorationColors: []wire.RGBA{{}}}))
	assert.Len(t, p.DecorationColors, 1)
}

func TestDecode_Tolerance(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	require.NoError(t, g.Set(1, 0, grid.Open))
	p, _ := encode(t, g)

	// a gap pair bridged by its own connection is a plain segment
	n := int32(p.NumPoints())
	p.Positions = append(p.Positions, 0.4, 0.9, 0.6, 0.9)
	p.Flags = append(p.Flags, wire.Gap|wire.Row, wire.Gap|wire.Row)
	p.Connections = append(p.Connections, wire.Connect(n, n+1), wire.Connect(0, 99), wire.Connect(0, 3))

	back, rep := decode(t, p)
	assert.Equal(t, 1, rep.FakeGaps)
	assert.Equal(t, 2, rep.IgnoredConnections)
	assert.Equal(t, grid.Code(0), back.At(1, 0))
}

func TestDecode_Fallbacks(t *testing.T) {
	g, err := grid.New(9, 9)
	require.NoError(t, err)
	p, _ := encode(t, g)
	p.GridSizeX, p.GridSizeY = 0, 0

	back, rep := decode(t, p)
	assert.True(t, rep.DimensionFallback)
	assert.Equal(t, 9, back.Width())
	assert.Equal(t, 9, back.Height())

	_, _, err = codec.Decode(plain, &wire.Panel{GridSizeX: 3, GridSizeY: 3, Positions: []float32{0, 0}, Flags: []wire.PointFlag{1}})
	assert.ErrorIs(t, err, codec.ErrNoPoints)
	_, _, err = codec.Decode(plain, nil)
	assert.ErrorIs(t, err, wire.ErrNilPanel)
}

func TestDecode_SideExits(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	p, _ := encode(t, g)
	back, _, err := codec.Decode(codec.PanelContext{ID: 0x033D4}, p)
	require.NoError(t, err)
	assert.True(t, back.SideExits())
}

func TestRegistry(t *testing.T) {
	r := codec.NewRegistry()
	r.Record(0x30, 0)
	r.Record(0x10, 12)
	r.Record(0x30, 8)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []codec.CustomPanel{{ID: 0x10, PillarWidth: 12}, {ID: 0x30, PillarWidth: 8}}, r.List())
	r.Forget(0x10)
	assert.Equal(t, 1, r.Len())

	var zero codec.Registry
	zero.Record(1, 0)
	assert.Equal(t, 1, zero.Len())
}
