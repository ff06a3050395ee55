package decoration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/panelwire/wire"
)

// ErrUnknownName indicates a text form that names no colour, kind or mode.
var ErrUnknownName = errors.New("decoration: unknown name")

// Kind tags the Symbol variant.
type Kind int

// Symbol kinds. The custom kinds (Arrow..Circle) are the ones the runtime can
// not draw natively; the encoder renders them as coloured-region geometry.
const (
	KindNone Kind = iota
	Stone
	Star
	Poly
	Eraser
	Triangle
	Arrow
	Mine
	Head
	Mushroom
	Ghost
	Bar
	Antitriangle
	Dart
	Rain
	Pointer
	Diamond
	Dice
	Bell
	Tent
	Circle
	Empty
	KindUnknown
)

// Masks over a packed code.
const (
	ColorMask    int32 = 0xf
	ExtraMask    int32 = 0xf0
	BaseMask     int32 = 0xf00
	Param1Mask   int32 = 0xf000
	Param2Mask   int32 = 0xf0000
	Param3Mask   int32 = 0xf00000
	SelectorMask int32 = 0xf000000
	// CustomMask identifies one custom kind: base 7 plus its selector.
	CustomMask int32 = SelectorMask | BaseMask
)

// Poly param1 bits.
const (
	CanRotate int32 = 0x1
	Negative  int32 = 0x2
)

const (
	baseStone    int32 = 0x100
	baseStar     int32 = 0x200
	basePoly     int32 = 0x400
	baseEraser   int32 = 0x500
	baseTriangle int32 = 0x600
	baseCustom   int32 = 0x700
	baseEmpty    int32 = 0xA00
)

var kindBase = map[Kind]int32{
	Stone:        baseStone,
	Star:         baseStar,
	Poly:         basePoly,
	Eraser:       baseEraser,
	Triangle:     baseTriangle,
	Arrow:        0x0000700,
	Mine:         0x1000700,
	Head:         0x2000700,
	Mushroom:     0x3000700,
	Ghost:        0x4000700,
	Bar:          0x5000700,
	Antitriangle: 0x6000700,
	Dart:         0x7000700,
	Rain:         0x8000700,
	Pointer:      0x9000700,
	Diamond:      0xA000700,
	Dice:         0xB000700,
	Bell:         0xC000700,
	Tent:         0xD000700,
	Circle:       0xE000700,
	Empty:        baseEmpty,
}

var customBySelector = func() map[int32]Kind {
	m := make(map[int32]Kind)
	for k, b := range kindBase {
		if b&BaseMask == baseCustom {
			m[b&SelectorMask] = k
		}
	}
	return m
}()

var kindNames = [...]string{
	"none", "stone", "star", "poly", "eraser", "triangle", "arrow", "mine", "head",
	"mushroom", "ghost", "bar", "antitriangle", "dart", "rain", "pointer",
	"diamond", "dice", "bell", "tent", "circle", "empty", "unknown",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for i, n := range kindNames {
		if n == s {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("decoration: kind %q: %w", s, ErrUnknownName)
}

// IsCustom reports whether k is drawn as glyph geometry by the encoder.
func (k Kind) IsCustom() bool { return k >= Arrow && k <= Circle }

// CustomKinds lists the custom kinds in the order the encoder renders them.
var CustomKinds = []Kind{Arrow, Mine, Head, Mushroom, Ghost, Bar, Antitriangle, Dart, Rain, Pointer, Diamond, Dice, Bell, Tent, Circle}

// Symbol is the unpacked content of one cell.
//
// Param1..Param3 hold the raw nibbles; their meaning depends on Kind
// (see the accessors below). Shape is the 4x4 polyomino mask and is only
// meaningful for Poly. Raw keeps the original code for KindUnknown.
type Symbol struct {
	Kind   Kind  `json:"kind"`
	Color  Color `json:"color,omitempty"`
	Extra  int32 `json:"extra,omitempty"`
	Param1 int32 `json:"param1,omitempty"`
	Param2 int32 `json:"param2,omitempty"`
	Param3 int32 `json:"param3,omitempty"`
	Shape  int32 `json:"shape,omitempty"`
	Raw    int32 `json:"raw,omitempty"`
}

// Unpack decodes a packed cell code.
func Unpack(code int32) Symbol {
	if code == 0 {
		return Symbol{}
	}
	s := Symbol{
		Color:  Color(code & ColorMask),
		Extra:  (code & ExtraMask) >> 4,
		Param1: (code & Param1Mask) >> 12,
	}
	base := code & BaseMask
	switch base {
	case baseStone:
		s.Kind = Stone
	case baseStar:
		s.Kind = Star
	case basePoly:
		s.Kind = Poly
		s.Shape = int32(uint32(code) >> 16)
		return s
	case baseEraser:
		s.Kind = Eraser
	case baseTriangle:
		s.Kind = Triangle
	case baseEmpty:
		s.Kind = Empty
	case baseCustom:
		k, ok := customBySelector[code&SelectorMask]
		if !ok {
			return Symbol{Kind: KindUnknown, Raw: code}
		}
		s.Kind = k
	default:
		return Symbol{Kind: KindUnknown, Raw: code}
	}
	if code&SelectorMask != 0 && base != baseCustom || uint32(code)>>28 != 0 {
		// selector bits on a native kind, or top nibble set: nothing models them
		return Symbol{Kind: KindUnknown, Raw: code}
	}
	s.Param2 = (code & Param2Mask) >> 16
	s.Param3 = (code & Param3Mask) >> 20
	return s
}

// Pack encodes s. Pack(Unpack(c)) == c.
func Pack(s Symbol) int32 {
	switch s.Kind {
	case KindNone:
		return 0
	case KindUnknown:
		return s.Raw
	}
	code := kindBase[s.Kind] | int32(s.Color)&ColorMask | (s.Extra<<4)&ExtraMask | (s.Param1<<12)&Param1Mask
	if s.Kind == Poly {
		return code | int32(uint32(s.Shape)<<16)
	}
	return code | (s.Param2<<16)&Param2Mask | (s.Param3<<20)&Param3Mask
}

// Code is shorthand for Pack(s).
func (s Symbol) Code() int32 { return Pack(s) }

// IsZero reports whether the cell is empty.
func (s Symbol) IsZero() bool { return s.Kind == KindNone }

// Ticks is the arrow tick count.
func (s Symbol) Ticks() int { return int(s.Param1) }

// Count is the repeat count of triangles, antitriangles and darts, the
// numeral of mines, or the pip count of dice.
func (s Symbol) Count() int { return int(s.Param2) }

// Direction is the direction index of arrows, rains, bells and heads, or
// the direction nibble of darts.
func (s Symbol) Direction() int {
	if s.Kind == Dart {
		return int(s.Param1)
	}
	return int(s.Param2)
}

// Variant is the full parameter byte used by ghosts.
func (s Symbol) Variant() int { return int(s.Param2 | s.Param3<<4) }

// CanRotate reports the poly rotation flag.
func (s Symbol) CanRotate() bool { return s.Param1&CanRotate != 0 }

// Negative reports the poly negative (subtractive) flag.
func (s Symbol) Negative() bool { return s.Param1&Negative != 0 }

// Style returns the style bits this symbol contributes to its panel.
func (s Symbol) Style() wire.Style {
	switch s.Kind {
	case KindNone, Empty:
		return 0
	case Stone:
		return wire.HasStones
	case Star:
		return wire.HasStars
	case Poly:
		return wire.HasShapers
	case Eraser:
		return wire.HasErasers
	case Triangle:
		return wire.HasTriangles
	case KindUnknown:
		return rawStyle(s.Raw)
	}
	return wire.HasTriangles | wire.HasStones
}

// rawStyle classifies an unmodelled code by its low base bits, the way the
// runtime itself does.
func rawStyle(code int32) wire.Style {
	switch code & 0x700 {
	case baseStone:
		return wire.HasStones
	case baseStar:
		return wire.HasStars
	case basePoly:
		return wire.HasShapers
	case baseEraser:
		return wire.HasErasers
	case baseTriangle:
		return wire.HasTriangles
	}
	return wire.HasTriangles | wire.HasStones
}

// New builds a plain symbol of kind k.
func New(k Kind, c Color) Symbol { return Symbol{Kind: k, Color: c} }

// NewTriangle builds a triangle with count 1..3.
func NewTriangle(count int, c Color) Symbol {
	return Symbol{Kind: Triangle, Color: c, Param2: int32(count)}
}

// NewArrow builds an arrow with ticks 1..3 pointing in direction 0..7.
func NewArrow(ticks, dir int, c Color) Symbol {
	return Symbol{Kind: Arrow, Color: c, Param1: int32(ticks), Param2: int32(dir)}
}

// NewCustom builds a custom kind with its single parameter in param2.
func NewCustom(k Kind, param int, c Color) Symbol {
	s := Symbol{Kind: k, Color: c, Param2: int32(param & 0xf)}
	if k == Ghost {
		s.Param3 = int32(param>>4) & 0xf
	}
	return s
}

// NewDart builds a dart with count in param2 and direction in param1.
func NewDart(count, dir int, c Color) Symbol {
	return Symbol{Kind: Dart, Color: c, Param1: int32(dir), Param2: int32(count)}
}

// NormalizeShape shifts a 4x4 polyomino mask into the top-left corner.
// A zero mask stays zero.
func NormalizeShape(shape int32) int32 {
	shape &= 0xffff
	if shape == 0 {
		return 0
	}
	for shape&0xf == 0 {
		shape >>= 4
	}
	for shape&0x1111 == 0 {
		shape >>= 1
	}
	return shape
}

// NewPoly builds a polyomino symbol from a 4x4 mask. The mask is normalised.
func NewPoly(shape int32, rotate, negative bool, c Color) Symbol {
	s := Symbol{Kind: Poly, Color: c, Shape: NormalizeShape(shape)}
	if rotate {
		s.Param1 |= CanRotate
	}
	if negative {
		s.Param1 |= Negative
	}
	return s
}
