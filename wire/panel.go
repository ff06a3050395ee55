package wire

import "fmt"

// Connection is one segment between two points, stored low index first.
type Connection struct {
	A, B int32
}

// Connect builds a Connection with the lower index in A.
func Connect(a, b int32) Connection {
	if a > b {
		a, b = b, a
	}
	return Connection{A: a, B: b}
}

// Has reports whether i is one of the two points of c.
func (c Connection) Has(i int32) bool { return c.A == i || c.B == i }

// Other returns the point opposite i, or -1 when i is not part of c.
func (c Connection) Other(i int32) int32 {
	switch i {
	case c.A:
		return c.B
	case c.B:
		return c.A
	}
	return -1
}

// RGBA is a colour as the runtime stores it: four float32 channels in [0,1].
type RGBA [4]float32

// SymbolColors is the optional symbol palette override written alongside
// decorations. Slots, when non-nil, holds exactly five colours (A..E).
type SymbolColors struct {
	Push  int32
	Slots []RGBA
}

// Panel is the complete flat representation of one panel.
//
// Positions holds 2*len(Flags) values. DecorationFlags and DecorationColors,
// when present, are parallel to Decorations. Reflection, when present, holds
// one partner index per point. ColoredRegions holds 4-tuples.
type Panel struct {
	GridSizeX int32
	GridSizeY int32
	Style     Style
	Cylinder  bool

	// PathWidthScale is written only when non-zero.
	PathWidthScale float32
	NeedsRedraw    bool

	Positions   []float32
	Flags       []PointFlag
	Connections []Connection

	Decorations      []int32
	DecorationFlags  []int32
	DecorationColors []RGBA

	Reflection     []int32
	ColoredRegions []int32

	SymbolColors *SymbolColors
}

// NumPoints returns the number of wire points.
func (p *Panel) NumPoints() int { return len(p.Flags) }

// NumConnections returns the number of connection pairs.
func (p *Panel) NumConnections() int { return len(p.Connections) }

// NumColoredRegions returns the number of 4-tuples in ColoredRegions.
func (p *Panel) NumColoredRegions() int { return len(p.ColoredRegions) / 4 }

// Point returns the physical position of point i.
func (p *Panel) Point(i int) (x, y float32) {
	return p.Positions[2*i], p.Positions[2*i+1]
}

// Validate checks the structural relations between the parallel arrays.
// Complexity: O(P + C) for P points and C connections.
func (p *Panel) Validate() error {
	if len(p.Positions) < 2*len(p.Flags) {
		return fmt.Errorf("Panel.Validate: %d positions for %d points: %w", len(p.Positions), len(p.Flags), ErrShortArray)
	}
	if p.DecorationFlags != nil && len(p.DecorationFlags) != len(p.Decorations) {
		return fmt.Errorf("Panel.Validate: %d decoration flags for %d decorations: %w", len(p.DecorationFlags), len(p.Decorations), ErrShortArray)
	}
	if p.Reflection != nil && len(p.Reflection) < len(p.Flags) {
		return fmt.Errorf("Panel.Validate: reflection table %d for %d points: %w", len(p.Reflection), len(p.Flags), ErrShortArray)
	}
	if len(p.ColoredRegions)%4 != 0 {
		return fmt.Errorf("Panel.Validate: colored regions length %d: %w", len(p.ColoredRegions), ErrShortArray)
	}
	return nil
}

// Clone returns a deep copy of p.
func (p *Panel) Clone() *Panel {
	c := *p
	c.Positions = append([]float32(nil), p.Positions...)
	c.Flags = append([]PointFlag(nil), p.Flags...)
	c.Connections = append([]Connection(nil), p.Connections...)
	c.Decorations = append([]int32(nil), p.Decorations...)
	c.DecorationFlags = append([]int32(nil), p.DecorationFlags...)
	c.DecorationColors = append([]RGBA(nil), p.DecorationColors...)
	c.Reflection = append([]int32(nil), p.Reflection...)
	c.ColoredRegions = append([]int32(nil), p.ColoredRegions...)
	if p.SymbolColors != nil {
		sc := *p.SymbolColors
		sc.Slots = append([]RGBA(nil), p.SymbolColors.Slots...)
		c.SymbolColors = &sc
	}
	return &c
}
