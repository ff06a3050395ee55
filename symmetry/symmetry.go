// Package symmetry maps grid coordinates and directions through the mirror
// and rotation families a panel can be bound to.
//
// Coordinates are grid coordinates: x grows to the right, y grows downward,
// both in [0,w) and [0,h). Pillar families wrap x modulo the width.
//
// Every family except RotateLeft and RotateRight is an involution; those two
// invert each other (see Inverse).
package symmetry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSymmetry indicates a name that matches no family.
var ErrUnknownSymmetry = errors.New("symmetry: unknown family")

// Symmetry names one mirror or rotation family.
type Symmetry int

// Families.
const (
	None Symmetry = iota
	Horizontal
	Vertical
	Rotational
	RotateLeft
	RotateRight
	FlipXY
	FlipNegXY
	ParallelH
	ParallelV
	ParallelHFlip
	ParallelVFlip
	PillarParallel
	PillarHorizontal
	PillarVertical
	PillarRotational
)

var names = [...]string{
	"none", "horizontal", "vertical", "rotational", "rotate-left", "rotate-right",
	"flip-xy", "flip-neg-xy", "parallel-h", "parallel-v", "parallel-h-flip",
	"parallel-v-flip", "pillar-parallel", "pillar-horizontal", "pillar-vertical",
	"pillar-rotational",
}

// All lists every family except None, in classification priority order.
var All = []Symmetry{
	Horizontal, Vertical, Rotational, RotateLeft, RotateRight, FlipXY, FlipNegXY,
	ParallelH, ParallelV, ParallelHFlip, ParallelVFlip,
	PillarParallel, PillarHorizontal, PillarVertical, PillarRotational,
}

func (s Symmetry) String() string {
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return fmt.Sprintf("symmetry(%d)", int(s))
}

// Parse accepts the names printed by String, case-insensitively.
func Parse(name string) (Symmetry, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range names {
		if v == n {
			return Symmetry(i), nil
		}
	}
	return None, fmt.Errorf("symmetry.Parse(%q): %w", name, ErrUnknownSymmetry)
}

// MarshalText implements encoding.TextMarshaler.
func (s Symmetry) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symmetry) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// IsPillar reports whether s wraps x around a cylinder.
func (s Symmetry) IsPillar() bool { return s >= PillarParallel && s <= PillarRotational }

// Inverse returns the family that undoes s.
func Inverse(s Symmetry) Symmetry {
	switch s {
	case RotateLeft:
		return RotateRight
	case RotateRight:
		return RotateLeft
	}
	return s
}

// Frame is the grid extent a reflection works in.
type Frame struct {
	Width, Height int
	Pillar        bool
}

// Applicable reports whether s maps the intersections of f onto intersections.
// Pillar grids take the pillar families and Horizontal; flat grids take the
// rest, with the 90° and diagonal families restricted to square grids.
func Applicable(s Symmetry, f Frame) bool {
	switch {
	case s == None:
		return true
	case s.IsPillar():
		return f.Pillar
	case s == Horizontal:
		return true
	case f.Pillar:
		return false
	case s == RotateLeft, s == RotateRight, s == FlipXY, s == FlipNegXY:
		return f.Width == f.Height
	}
	return s > None && s < PillarParallel
}

// Reflect maps (x, y) through s.
// Complexity: O(1).
func Reflect(s Symmetry, f Frame, x, y int) (int, int) {
	w, h := f.Width, f.Height
	switch s {
	case Horizontal:
		return x, h - 1 - y
	case Vertical:
		return w - 1 - x, y
	case Rotational:
		return w - 1 - x, h - 1 - y
	case RotateLeft:
		return y, w - 1 - x
	case RotateRight:
		return h - 1 - y, x
	case FlipXY:
		return y, x
	case FlipNegXY:
		return h - 1 - y, w - 1 - x
	case ParallelH:
		return x, shift(y, h)
	case ParallelV:
		return shift(x, w), y
	case ParallelHFlip:
		return w - 1 - x, shift(y, h)
	case ParallelVFlip:
		return shift(x, w), h - 1 - y
	case PillarParallel:
		return mod(x+w/2, w), y
	case PillarHorizontal:
		return mod(x+w/2, w), h - 1 - y
	case PillarVertical:
		return mod(w/2-x, w), y
	case PillarRotational:
		return mod(w/2-x, w), h - 1 - y
	}
	return x, y
}

// shift moves v by half the extent n, holding the middle line in place.
func shift(v, n int) int {
	if v == n/2 {
		return v
	}
	return (v + (n+1)/2) % (n + 1)
}

func mod(v, n int) int {
	if n == 0 {
		return v
	}
	return ((v % n) + n) % n
}
