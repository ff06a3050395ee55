package grid

import (
	"fmt"

	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/symmetry"
	"github.com/katalvlaran/panelwire/wire"
)

func (g *Grid) requireRole(method string, x, y int, want ...Role) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("Grid.%s(%d,%d): %w", method, x, y, ErrOutOfRange)
	}
	r := RoleOf(x, y)
	for _, w := range want {
		if r == w {
			return nil
		}
	}
	return fmt.Errorf("Grid.%s(%d,%d) on %s: %w", method, x, y, r, ErrWrongRole)
}

// Symbol returns the decoration of the cell at (x, y).
func (g *Grid) Symbol(x, y int) (decoration.Symbol, error) {
	if err := g.requireRole("Symbol", x, y, RoleCell); err != nil {
		return decoration.Symbol{}, err
	}
	return decoration.Unpack(int32(g.At(x, y))), nil
}

// SetSymbol stores s in the cell at (x, y).
func (g *Grid) SetSymbol(x, y int, s decoration.Symbol) error {
	if err := g.requireRole("SetSymbol", x, y, RoleCell); err != nil {
		return err
	}
	return g.Set(x, y, Code(decoration.Pack(s)))
}

// ClearSymbol empties the cell at (x, y).
func (g *Grid) ClearSymbol(x, y int) error {
	if err := g.requireRole("ClearSymbol", x, y, RoleCell); err != nil {
		return err
	}
	return g.Clear(x, y)
}

// SetShape stores a polyomino in the cell at (x, y). A zero mask is a no-op.
func (g *Grid) SetShape(x, y int, shape int32, rotate, negative bool, c decoration.Color) error {
	if err := g.requireRole("SetShape", x, y, RoleCell); err != nil {
		return err
	}
	if shape&0xffff == 0 {
		return nil
	}
	return g.Set(x, y, Code(decoration.NewPoly(shape, rotate, negative, c).Code()))
}

// PlaceDot puts a dot on the intersection or edge at (x, y). Blue and cyan
// dots belong to the first line, orange and yellow to the second; any other
// colour is neutral. On a symmetric grid the mirror position receives the
// bare marker so nothing else is placed there.
func (g *Grid) PlaceDot(x, y int, c decoration.Color) error {
	if err := g.requireRole("PlaceDot", x, y, RoleIntersection, RoleEdge); err != nil {
		return err
	}
	marker := edgeMarker(x, y)
	if g.sym != symmetry.None {
		sx, sy := g.Mirror(x, y)
		if err := g.Set(sx, sy, Code(marker)); err != nil {
			return err
		}
	}
	flags := wire.Dot | marker
	switch c {
	case decoration.Blue, decoration.Cyan:
		flags |= wire.DotIsBlue
	case decoration.Orange, decoration.Yellow:
		flags |= wire.DotIsOrange
	}
	return g.Set(x, y, Code(flags))
}

// PlaceGap breaks the edge at (x, y).
func (g *Grid) PlaceGap(x, y int) error {
	if err := g.requireRole("PlaceGap", x, y, RoleEdge); err != nil {
		return err
	}
	return g.Set(x, y, Code(wire.Gap|edgeMarker(x, y)))
}

// edgeMarker is ROW for horizontal edges, COLUMN for vertical ones and
// nothing for intersections.
func edgeMarker(x, y int) wire.PointFlag {
	switch {
	case x%2 == 1 && y%2 == 0:
		return wire.Row
	case x%2 == 0 && y%2 == 1:
		return wire.Column
	}
	return 0
}

// Startpoints returns a copy of the start list.
func (g *Grid) Startpoints() []Point { return append([]Point(nil), g.startpoints...) }

// Endpoints returns a copy of the exit list.
func (g *Grid) Endpoints() []Endpoint { return append([]Endpoint(nil), g.endpoints...) }

// AddStart records a start at (x, y).
func (g *Grid) AddStart(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("Grid.AddStart(%d,%d): %w", x, y, ErrOutOfRange)
	}
	g.startpoints = append(g.startpoints, Point{X: x, Y: y})
	return nil
}

// AddExit records an exit at (x, y) pointing away from the boundary it sits
// on: top is UP, bottom DOWN, left column LEFT and anything else RIGHT.
// Side-exit grids and the ParallelH families override that on the side columns.
func (g *Grid) AddExit(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("Grid.AddExit(%d,%d): %w", x, y, ErrOutOfRange)
	}
	var dir symmetry.Direction
	switch {
	case y == 0:
		dir = symmetry.Up
	case y == g.height-1:
		dir = symmetry.Down
	case x == 0:
		dir = symmetry.Left
	default:
		dir = symmetry.Right
	}
	if g.sideExits {
		dir = symmetry.Right
		if x == 0 {
			dir = symmetry.Left
		}
	}
	if g.sym == symmetry.ParallelH || g.sym == symmetry.ParallelHFlip {
		if x == 0 {
			dir = symmetry.Left
		}
		if x == g.width-1 {
			dir = symmetry.Right
		}
	}
	flags := wire.Endpoint | wire.Row
	if dir == symmetry.Up || dir == symmetry.Down {
		flags = wire.Endpoint | wire.Column
	}
	g.endpoints = append(g.endpoints, Endpoint{X: x, Y: y, Dir: dir, Flags: flags})
	return nil
}

// AddEndpoint records a fully specified exit.
func (g *Grid) AddEndpoint(e Endpoint) error {
	if !g.InBounds(e.X, e.Y) {
		return fmt.Errorf("Grid.AddEndpoint(%d,%d): %w", e.X, e.Y, ErrOutOfRange)
	}
	g.endpoints = append(g.endpoints, e)
	return nil
}

// ClearEndpoints drops every start and exit.
func (g *Grid) ClearEndpoints() {
	g.startpoints = nil
	g.endpoints = nil
}
