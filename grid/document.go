package grid

import (
	"fmt"

	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/symmetry"
	"github.com/katalvlaran/panelwire/wire"
)

// PlacedSymbol is one non-empty cell of a Document.
type PlacedSymbol struct {
	X      int               `json:"x"`
	Y      int               `json:"y"`
	Symbol decoration.Symbol `json:"symbol"`
}

// PlacedFlags is one intersection or edge of a Document with non-zero flags.
type PlacedFlags struct {
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Flags wire.PointFlag `json:"flags"`
}

// Document is the sparse, JSON-friendly form of a Grid. Positions not listed
// hold 0; Open lists the edges without a segment.
type Document struct {
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Pillar    bool              `json:"pillar,omitempty"`
	SideExits bool              `json:"sideExits,omitempty"`
	Symmetry  symmetry.Symmetry `json:"symmetry"`
	Bounds    Bounds            `json:"bounds"`

	Symbols []PlacedSymbol `json:"symbols,omitempty"`
	Flags   []PlacedFlags  `json:"flags,omitempty"`
	Open    []Point        `json:"open,omitempty"`
	Starts  []Point        `json:"starts,omitempty"`
	Exits   []Endpoint     `json:"exits,omitempty"`
}

// ToDocument captures g in sparse form.
// Complexity: O(W×H).
func (g *Grid) ToDocument() Document {
	d := Document{
		Width:     g.width,
		Height:    g.height,
		Pillar:    g.pillar,
		SideExits: g.sideExits,
		Symmetry:  g.sym,
		Bounds:    g.bounds,
		Starts:    g.Startpoints(),
		Exits:     g.Endpoints(),
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.At(x, y)
			switch {
			case c == 0:
			case RoleOf(x, y) == RoleCell:
				d.Symbols = append(d.Symbols, PlacedSymbol{X: x, Y: y, Symbol: decoration.Unpack(int32(c))})
			case RoleOf(x, y) == RoleEdge && c == Open:
				d.Open = append(d.Open, Point{X: x, Y: y})
			default:
				d.Flags = append(d.Flags, PlacedFlags{X: x, Y: y, Flags: wire.PointFlag(c)})
			}
		}
	}
	return d
}

// FromDocument rebuilds a Grid. Any entry that lands outside the grid or on
// the wrong role is an error.
func FromDocument(d Document) (*Grid, error) {
	opts := []Option{WithBounds(d.Bounds), WithSymmetry(d.Symmetry)}
	if d.Pillar {
		opts = append(opts, WithPillar())
	}
	if d.SideExits {
		opts = append(opts, WithSideExits())
	}
	g, err := New(d.Width, d.Height, opts...)
	if err != nil {
		return nil, err
	}
	for _, s := range d.Symbols {
		if err := g.SetSymbol(s.X, s.Y, s.Symbol); err != nil {
			return nil, err
		}
	}
	for _, f := range d.Flags {
		if err := g.requireRole("FromDocument", f.X, f.Y, RoleIntersection, RoleEdge); err != nil {
			return nil, err
		}
		if err := g.Set(f.X, f.Y, Code(f.Flags)); err != nil {
			return nil, err
		}
	}
	for _, p := range d.Open {
		if err := g.requireRole("FromDocument", p.X, p.Y, RoleEdge); err != nil {
			return nil, err
		}
		if err := g.Set(p.X, p.Y, Open); err != nil {
			return nil, err
		}
	}
	for _, s := range d.Starts {
		if err := g.AddStart(s.X, s.Y); err != nil {
			return nil, err
		}
	}
	for _, e := range d.Exits {
		if err := g.AddEndpoint(e); err != nil {
			return nil, fmt.Errorf("grid.FromDocument: %w", err)
		}
	}
	return g, nil
}
