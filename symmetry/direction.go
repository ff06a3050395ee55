package symmetry

import "strings"

// Direction is a set of exit directions. Diagonal exits combine two bits.
type Direction int

// Direction bits.
const (
	NoDirection Direction = 0
	Left        Direction = 1
	Right       Direction = 2
	Up          Direction = 4
	Down        Direction = 8
)

func (d Direction) String() string {
	if d == NoDirection {
		return "none"
	}
	var parts []string
	for _, b := range []struct {
		bit  Direction
		name string
	}{{Left, "left"}, {Right, "right"}, {Up, "up"}, {Down, "down"}} {
		if d&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}

// linear is the matrix part of each family acting on (dx, dy), y down.
type linear struct{ xx, xy, yx, yy int }

var linears = map[Symmetry]linear{
	Horizontal:       {1, 0, 0, -1},
	Vertical:         {-1, 0, 0, 1},
	Rotational:       {-1, 0, 0, -1},
	RotateLeft:       {0, 1, -1, 0},
	RotateRight:      {0, -1, 1, 0},
	FlipXY:           {0, 1, 1, 0},
	FlipNegXY:        {0, -1, -1, 0},
	ParallelHFlip:    {-1, 0, 0, 1},
	ParallelVFlip:    {1, 0, 0, -1},
	PillarHorizontal: {1, 0, 0, -1},
	PillarVertical:   {-1, 0, 0, 1},
	PillarRotational: {-1, 0, 0, -1},
}

func vector(d Direction) (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	}
	return 0, 0
}

func fromVector(dx, dy int) Direction {
	switch {
	case dx < 0:
		return Left
	case dx > 0:
		return Right
	case dy < 0:
		return Up
	case dy > 0:
		return Down
	}
	return NoDirection
}

// ReflectDirection maps every bit of d through the linear part of s.
// Translating families (ParallelH, ParallelV, PillarParallel) and None leave
// d unchanged.
func ReflectDirection(s Symmetry, d Direction) Direction {
	m, ok := linears[s]
	if !ok {
		return d
	}
	var out Direction
	for _, bit := range []Direction{Left, Right, Up, Down} {
		if d&bit == 0 {
			continue
		}
		dx, dy := vector(bit)
		out |= fromVector(m.xx*dx+m.xy*dy, m.yx*dx+m.yy*dy)
	}
	return out
}
