package codec_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/symmetry"
	"github.com/katalvlaran/panelwire/wire"
)

//----------------------------------------------------------------------------//
// Reflection table geometry
//----------------------------------------------------------------------------//

// familyGrid returns a blank grid bound to s: the pillar families on an 8×7
// cylinder, everything else on a flat 7×7.
func familyGrid(t *testing.T, s symmetry.Symmetry) *grid.Grid {
	t.Helper()
	opts := []grid.Option{grid.WithSymmetry(s)}
	w := 7
	if s.IsPillar() {
		opts = append(opts, grid.WithPillar())
		w = 8
	}
	g, err := grid.New(w, 7, opts...)
	require.NoError(t, err)
	return g
}

// doubled returns twice the grid coordinates of point i. ok is false for
// points off the half-step lattice, such as exits.
func doubled(g *grid.Grid, p *wire.Panel, i int) (dx, dy int, ok bool) {
	b := g.Bounds()
	px, py := p.Point(i)
	fx := 2 * float64(px-b.MinX) / float64(g.UnitWidth())
	fy := 2 * (float64(g.Height()-1) - float64(py-b.MinY)/float64(g.UnitHeight()))
	dx, dy = int(math.Round(fx)), int(math.Round(fy))
	return dx, dy, math.Abs(fx-float64(dx)) < 1e-3 && math.Abs(fy-float64(dy)) < 1e-3
}

// splitHalf undoes e+h for an edge coordinate e (odd) and an end h (even)
// one apart; an even d is a shared coordinate.
func splitHalf(d int) (e, h int) {
	if d%2 == 0 {
		return d / 2, d / 2
	}
	e = (d + 1) / 2
	if e%2 == 0 {
		e = (d - 1) / 2
	}
	return e, d - e
}

// mirrorDoubled maps a doubled lattice point through s. Gap halves are
// mirrored as their edge plus the end they lean toward; ok is false when
// that pair does not stay adjacent (the fixed line of a parallel family).
func mirrorDoubled(g *grid.Grid, s symmetry.Symmetry, dx, dy int) (int, int, bool) {
	f := g.Frame()
	if dx%2 == 0 && dy%2 == 0 {
		mx, my := symmetry.Reflect(s, f, dx/2, dy/2)
		return 2 * mx, 2 * my, true
	}
	if dx%2 != 0 && dy%2 != 0 {
		return 0, 0, false
	}
	ex, hx := splitHalf(dx)
	ey, hy := splitHalf(dy)
	if hx == g.Width() {
		hx = 0
	}
	emx, emy := symmetry.Reflect(s, f, ex, ey)
	hmx, hmy := symmetry.Reflect(s, f, hx, hy)
	if g.Pillar() && emx == g.Width()-1 && hmx == 0 {
		hmx = g.Width()
	}
	if abs(emx-hmx)+abs(emy-hmy) != 1 {
		return 0, 0, false
	}
	return emx + hmx, emy + hmy, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// checkReflection asserts the table names a mirror for every point: the
// partner sits at the image of the point under s, or under its inverse for
// the 90° families whose break points pair both ways.
func checkReflection(t *testing.T, g *grid.Grid, p *wire.Panel, what string) {
	t.Helper()
	s := g.Symmetry()
	n := p.NumPoints()
	require.Len(t, p.Reflection, n, what)
	for i, j := range p.Reflection {
		require.True(t, j >= 0 && int(j) < n, "%s: partner %d of %d", what, j, i)
		if symmetry.Inverse(s) == s {
			assert.Equal(t, int32(i), p.Reflection[j], "%s: point %d not an involution", what, i)
		}
		dx, dy, ok := doubled(g, p, i)
		if !ok {
			continue
		}
		fx, fy, ok := mirrorDoubled(g, s, dx, dy)
		if !ok {
			continue
		}
		bx, by, _ := mirrorDoubled(g, symmetry.Inverse(s), dx, dy)
		jx, jy, _ := doubled(g, p, int(j))
		got := [2]int{jx, jy}
		if got != [2]int{bx, by} {
			assert.Equal(t, [2]int{fx, fy}, got, "%s: point %d at 2x(%d,%d)", what, i, dx, dy)
		}
	}
}

// TestReflection_EveryFamily places one gap, edge dot, intersection dot or
// edge exit orbit at every possible position under every family and checks the
// reflection table of each encoding.
func TestReflection_EveryFamily(t *testing.T) {
	type placement struct {
		name  string
		roles []grid.Role
		place func(g *grid.Grid, x, y int) error
	}
	placements := []placement{
		{"Gap", []grid.Role{grid.RoleEdge}, func(g *grid.Grid, x, y int) error { return g.PlaceGap(x, y) }},
		{"Dot", []grid.Role{grid.RoleEdge, grid.RoleIntersection}, func(g *grid.Grid, x, y int) error {
			return g.PlaceDot(x, y, decoration.None)
		}},
		{"Exit", []grid.Role{grid.RoleEdge}, func(g *grid.Grid, x, y int) error {
			if y != 0 && y != g.Height()-1 && (g.Pillar() || x != 0 && x != g.Width()-1) {
				return nil
			}
			// the whole orbit, so the 90° families map every exit forward
			px, py := x, y
			for {
				if err := g.AddExit(px, py); err != nil {
					return err
				}
				if px, py = g.Mirror(px, py); px == x && py == y {
					return nil
				}
			}
		}},
	}

	for _, s := range symmetry.All {
		t.Run(s.String(), func(t *testing.T) {
			for _, pl := range placements {
				blank := familyGrid(t, s)
				for y := 0; y < blank.Height(); y++ {
					for x := 0; x < blank.Width(); x++ {
						if !containsRole(pl.roles, grid.RoleOf(x, y)) {
							continue
						}
						g := familyGrid(t, s)
						require.NoError(t, pl.place(g, x, y))
						p, rep := encode(t, g)
						assert.Zero(t, rep.SkippedBreaks)
						checkReflection(t, g, p, fmt.Sprintf("%s at (%d,%d)", pl.name, x, y))
					}
				}
			}
		})
	}
}

func containsRole(rs []grid.Role, r grid.Role) bool {
	for _, v := range rs {
		if v == r {
			return true
		}
	}
	return false
}

// TestReflection_DiagonalGap pins the pairing of gap halves under both
// diagonal families: FlipXY crosses them, FlipNegXY keeps them straight.
func TestReflection_DiagonalGap(t *testing.T) {
	cases := []struct {
		s          symmetry.Symmetry
		near, want int32
	}{
		{symmetry.FlipXY, 16, 19},
		{symmetry.FlipNegXY, 16, 18},
	}
	for _, tc := range cases {
		t.Run(tc.s.String(), func(t *testing.T) {
			g := familyGrid(t, tc.s)
			require.NoError(t, g.PlaceGap(1, 0))
			p, _ := encode(t, g)
			require.Equal(t, 20, p.NumPoints())
			assert.Equal(t, tc.want, p.Reflection[tc.near])
			assert.Equal(t, tc.near, p.Reflection[tc.want])
		})
	}
}

// TestReflection_EdgeExitBreaks verifies the segment breaks under a mirrored
// pair of exits name each other.
func TestReflection_EdgeExitBreaks(t *testing.T) {
	g := familyGrid(t, symmetry.Vertical)
	require.NoError(t, g.AddExit(1, 0))
	require.NoError(t, g.AddExit(5, 0))
	p, _ := encode(t, g)
	require.Equal(t, 20, p.NumPoints())
	assert.Equal(t, []int32{18, 19, 16, 17}, p.Reflection[16:])
}
