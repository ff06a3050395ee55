package grid

import (
	"errors"

	"github.com/katalvlaran/panelwire/symmetry"
	"github.com/katalvlaran/panelwire/wire"
)

// Sentinel errors for grid operations.
var (
	// ErrBadDimensions indicates a size that cannot describe a panel.
	ErrBadDimensions = errors.New("grid: bad dimensions")
	// ErrOutOfRange indicates a coordinate outside the grid.
	ErrOutOfRange = errors.New("grid: coordinate out of range")
	// ErrWrongRole indicates an operation on a position of the wrong parity.
	ErrWrongRole = errors.New("grid: wrong role for position")
)

// Code is the raw value held at one grid position.
type Code int32

// Open marks an edge with no segment.
const Open Code = 0x1000000

// Role is the parity class of a position.
type Role int

const (
	// RoleIntersection is (even, even).
	RoleIntersection Role = iota
	// RoleEdge has exactly one odd coordinate.
	RoleEdge
	// RoleCell is (odd, odd).
	RoleCell
)

func (r Role) String() string {
	switch r {
	case RoleIntersection:
		return "intersection"
	case RoleEdge:
		return "edge"
	case RoleCell:
		return "cell"
	}
	return "role(?)"
}

// RoleOf returns the parity class of (x, y).
func RoleOf(x, y int) Role {
	switch {
	case x%2 == 0 && y%2 == 0:
		return RoleIntersection
	case x%2 == 1 && y%2 == 1:
		return RoleCell
	}
	return RoleEdge
}

// Point is a grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Endpoint is a path exit. Its wire position sits off the grid by a fixed
// distance in Dir.
type Endpoint struct {
	X     int                `json:"x"`
	Y     int                `json:"y"`
	Dir   symmetry.Direction `json:"dir"`
	Flags wire.PointFlag     `json:"flags"`
}

// Bounds is the physical extent of the first and last intersection.
type Bounds struct {
	MinX float32 `json:"minX"`
	MaxX float32 `json:"maxX"`
	MinY float32 `json:"minY"`
	MaxY float32 `json:"maxY"`
}

// DefaultBounds is the extent a newly built grid occupies.
var DefaultBounds = Bounds{MinX: 0.1, MaxX: 0.9, MinY: 0.1, MaxY: 0.9}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithPillar builds a cylindrical grid; the width must then be even.
func WithPillar() Option {
	return func(g *Grid) { g.pillar = true }
}

// WithBounds sets the physical extent.
func WithBounds(b Bounds) Option {
	return func(g *Grid) { g.bounds = b }
}

// WithSymmetry binds the grid to a symmetry family.
func WithSymmetry(s symmetry.Symmetry) Option {
	return func(g *Grid) { g.sym = s }
}

// WithSideExits makes every exit point sideways (LEFT on column 0, RIGHT
// elsewhere) regardless of the boundary it sits on.
func WithSideExits() Option {
	return func(g *Grid) { g.sideExits = true }
}
