package grid

import (
	"fmt"

	"github.com/katalvlaran/panelwire/symmetry"
)

// Grid is the dense model of one panel. A Grid is owned by one caller; it
// is not safe for concurrent mutation.
type Grid struct {
	width, height int
	pillar        bool
	sideExits     bool
	cells         []Code

	startpoints []Point
	endpoints   []Endpoint

	sym    symmetry.Symmetry
	bounds Bounds
	unitW  float32
	unitH  float32

	resized  bool
	consumed bool
}

// New returns an empty width×height grid. Every code starts at 0, so every
// edge is a plain segment.
// Returns ErrBadDimensions for non-positive sizes, an even flat width, an odd
// pillar width, or an even height.
// Complexity: O(W×H).
func New(width, height int, opts ...Option) (*Grid, error) {
	g := &Grid{bounds: DefaultBounds}
	for _, opt := range opts {
		opt(g)
	}
	if err := checkDimensions(width, height, g.pillar); err != nil {
		return nil, fmt.Errorf("grid.New(%d,%d): %w", width, height, err)
	}
	g.width, g.height = width, height
	g.cells = make([]Code, width*height)
	g.rescale()
	return g, nil
}

func checkDimensions(width, height int, pillar bool) error {
	if width <= 0 || height <= 0 || height%2 == 0 {
		return ErrBadDimensions
	}
	if pillar != (width%2 == 0) {
		return ErrBadDimensions
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Pillar reports whether the grid wraps horizontally.
func (g *Grid) Pillar() bool { return g.pillar }

// SideExits reports whether exits are forced sideways.
func (g *Grid) SideExits() bool { return g.sideExits }

// Symmetry returns the bound symmetry family.
func (g *Grid) Symmetry() symmetry.Symmetry { return g.sym }

// SetSymmetry rebinds the symmetry family.
func (g *Grid) SetSymmetry(s symmetry.Symmetry) { g.sym = s }

// Frame returns the extent symmetry functions work in.
func (g *Grid) Frame() symmetry.Frame {
	return symmetry.Frame{Width: g.width, Height: g.height, Pillar: g.pillar}
}

// Bounds returns the physical extent.
func (g *Grid) Bounds() Bounds { return g.bounds }

// SetBounds replaces the physical extent and recomputes the unit scale.
func (g *Grid) SetBounds(b Bounds) {
	g.bounds = b
	g.rescale()
}

// UnitWidth is the physical distance of one grid step along x.
func (g *Grid) UnitWidth() float32 { return g.unitW }

// UnitHeight is the physical distance of one grid step along y.
func (g *Grid) UnitHeight() float32 { return g.unitH }

// Resized reports whether Resize has been called since construction.
func (g *Grid) Resized() bool { return g.resized }

// rescale recomputes the unit scale from bounds and dimensions.
func (g *Grid) rescale() {
	g.unitW, g.unitH = 0, 0
	if g.width > 1 {
		g.unitW = (g.bounds.MaxX - g.bounds.MinX) / float32(g.width-1)
	}
	if g.pillar {
		g.unitW = 1 / float32(g.width)
	}
	if g.height > 1 {
		g.unitH = (g.bounds.MaxY - g.bounds.MinY) / float32(g.height-1)
	}
}

// InBounds reports whether (x, y) lies inside the grid.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Role returns the parity class of (x, y).
func (g *Grid) Role(x, y int) Role { return RoleOf(x, y) }

func (g *Grid) index(method string, x, y int) (int, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("Grid.%s(%d,%d): %w", method, x, y, ErrOutOfRange)
	}
	return y*g.width + x, nil
}

// Get returns the code at (x, y).
// Returns ErrOutOfRange outside the grid.
func (g *Grid) Get(x, y int) (Code, error) {
	i, err := g.index("Get", x, y)
	if err != nil {
		return 0, err
	}
	return g.cells[i], nil
}

// At returns the code at (x, y) and panics outside the grid, like a slice
// index. Use Get for checked access.
func (g *Grid) At(x, y int) Code {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: At(%d,%d) outside %dx%d", x, y, g.width, g.height))
	}
	return g.cells[y*g.width+x]
}

// Set stores c at (x, y).
// Returns ErrOutOfRange outside the grid.
func (g *Grid) Set(x, y int, c Code) error {
	i, err := g.index("Set", x, y)
	if err != nil {
		return err
	}
	g.cells[i] = c
	return nil
}

// Or merges the bits of c into (x, y).
func (g *Grid) Or(x, y int, c Code) error {
	i, err := g.index("Or", x, y)
	if err != nil {
		return err
	}
	g.cells[i] |= c
	return nil
}

// Clear resets (x, y) to 0.
// Returns ErrOutOfRange outside the grid.
func (g *Grid) Clear(x, y int) error {
	i, err := g.index("Clear", x, y)
	if err != nil {
		return err
	}
	g.cells[i] = 0
	return nil
}

// Fill sets every position of role r to c.
func (g *Grid) Fill(r Role, c Code) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if RoleOf(x, y) == r {
				g.cells[y*g.width+x] = c
			}
		}
	}
}

// Mirror maps (x, y) through the bound symmetry.
func (g *Grid) Mirror(x, y int) (int, int) {
	return symmetry.Reflect(g.sym, g.Frame(), x, y)
}

// MirrorDirection maps d through the bound symmetry.
func (g *Grid) MirrorDirection(d symmetry.Direction) symmetry.Direction {
	return symmetry.ReflectDirection(g.sym, d)
}

// Consume marks the grid as encoded. It returns false when the grid was
// already consumed by an earlier call.
func (g *Grid) Consume() bool {
	if g.consumed {
		return false
	}
	g.consumed = true
	return true
}

// Consumed reports whether Consume has been called.
func (g *Grid) Consumed() bool { return g.consumed }

// Clone returns an independent, unconsumed copy of g.
// Complexity: O(W×H + S + E).
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = append([]Code(nil), g.cells...)
	c.startpoints = append([]Point(nil), g.startpoints...)
	c.endpoints = append([]Endpoint(nil), g.endpoints...)
	c.consumed = false
	return &c
}
