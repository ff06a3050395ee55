package decoration

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/panelwire/wire"
)

// Color is the palette index stored in the low nibble of a code.
type Color int32

// Palette indices.
const (
	None    Color = 0x0
	Black   Color = 0x1
	White   Color = 0x2
	Red     Color = 0x3
	Purple  Color = 0x4
	Green   Color = 0x5
	Cyan    Color = 0x6
	Magenta Color = 0x7
	Yellow  Color = 0x8
	Blue    Color = 0x9
	Orange  Color = 0xA
	X       Color = 0xF
)

var colorNames = map[Color]string{
	None: "none", Black: "black", White: "white", Red: "red", Purple: "purple",
	Green: "green", Cyan: "cyan", Magenta: "magenta", Yellow: "yellow",
	Blue: "blue", Orange: "orange", X: "x",
}

var colorRGBA = map[Color]wire.RGBA{
	Black:   {0, 0, 0, 1},
	White:   {1, 1, 1, 1},
	Red:     {1, 0, 0, 1},
	Purple:  {0.5, 0, 1, 1},
	Green:   {0, 1, 0, 1},
	Cyan:    {0, 1, 1, 1},
	Magenta: {1, 0, 1, 1},
	Yellow:  {1, 1, 0, 1},
	Blue:    {0, 0, 1, 1},
	Orange:  {1, 0.5, 0, 1},
}

// RGBA returns the colour the runtime draws for c. None, X and unnamed
// indices are fully transparent.
func (c Color) RGBA() wire.RGBA { return colorRGBA[c] }

func (c Color) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return fmt.Sprintf("color(%d)", int32(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for k, n := range colorNames {
		if n == s {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("decoration: color %q: %w", s, ErrUnknownName)
}

// ColorMode selects how the encoder treats symbol colours.
type ColorMode int

const (
	// Default writes colours only when the panel already carried them.
	Default ColorMode = iota
	// Reset clears the push-symbol-colours switch.
	Reset
	// Alternate sets the push-symbol-colours switch.
	Alternate
	// WriteColors always writes the per-decoration colour array.
	WriteColors
	// Treehouse remaps colours onto the five-slot treehouse palette.
	Treehouse
	// TreehouseAlternate is Treehouse with blue and white in slots B and E.
	TreehouseAlternate
)

var modeNames = [...]string{"default", "reset", "alternate", "write-colors", "treehouse", "treehouse-alternate"}

func (m ColorMode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseColorMode accepts the names printed by String.
func ParseColorMode(s string) (ColorMode, error) {
	for i, n := range modeNames {
		if n == s {
			return ColorMode(i), nil
		}
	}
	return Default, fmt.Errorf("decoration: color mode %q: %w", s, ErrUnknownName)
}

// IsTreehouse reports whether m uses the treehouse palette.
func (m ColorMode) IsTreehouse() bool { return m == Treehouse || m == TreehouseAlternate }

// WritesColors reports whether m always emits the decoration colour array.
func (m ColorMode) WritesColors() bool { return m == WriteColors || m.IsTreehouse() }

// Remap rewrites c for the treehouse palette; other modes return c unchanged.
// Green lands in slot 6, orange in 5 and magenta in 4.
func (m ColorMode) Remap(c Color) Color {
	if !m.IsTreehouse() {
		return c
	}
	switch c {
	case Green:
		return 6
	case Orange:
		return 5
	case Magenta:
		return 4
	}
	return c
}

// Palette returns the symbol palette override written for m, or nil when m
// only toggles the push switch (Reset, Alternate) or writes nothing.
func (m ColorMode) Palette() *wire.SymbolColors {
	orange := wire.RGBA{1, 0.5, 0, 1}
	switch m {
	case Treehouse:
		return &wire.SymbolColors{Push: 1, Slots: []wire.RGBA{
			{0, 0, 0, 1}, {1, 1, 1, 1}, orange, {1, 0, 1, 1}, {0, 1, 0, 1},
		}}
	case TreehouseAlternate:
		return &wire.SymbolColors{Push: 1, Slots: []wire.RGBA{
			{0, 0, 0, 1}, {0, 0, 1, 1}, orange, {1, 0, 1, 1}, {1, 1, 1, 1},
		}}
	case Reset:
		return &wire.SymbolColors{Push: 0}
	case Alternate:
		return &wire.SymbolColors{Push: 1}
	}
	return nil
}
