package codec

import (
	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/wire"
)

// decorations writes the cell codes in decoration order and recomputes the
// element style bits.
func (e *encoder) decorations(out *wire.Panel, o *encodeOptions) {
	g := e.g
	e.style &^= wire.ElementStyles

	cells := g.NumDecorations()
	codes := make([]int32, cells)
	colors := make([]wire.RGBA, cells)
	var filled, custom bool
	for i := 0; i < cells; i++ {
		x, y := g.DecorationCell(i)
		code := int32(g.At(x, y))
		if o.mode.IsTreehouse() {
			c := decoration.Color(code & decoration.ColorMask)
			if r := o.mode.Remap(c); r != c {
				code = code&^decoration.ColorMask | int32(r)
				_ = g.Set(x, y, grid.Code(code))
			}
		}
		codes[i] = code
		colors[i] = decoration.Color(code & decoration.ColorMask).RGBA()
		if code == 0 {
			continue
		}
		filled = true
		s := decoration.Unpack(code)
		style := s.Style()
		e.style |= style
		if s.Kind.IsCustom() || s.Kind == decoration.KindUnknown && style == wire.HasTriangles|wire.HasStones {
			custom = true
		}
	}

	if !filled {
		out.Decorations = nil
		out.DecorationFlags = nil
		out.DecorationColors = nil
		return
	}
	out.Decorations = codes
	out.DecorationFlags = make([]int32, cells)

	prev := o.previous
	switch {
	case o.mode.WritesColors() || prev != nil && prev.DecorationColors != nil:
		out.DecorationColors = colors
	case o.mode == decoration.Reset || o.mode == decoration.Alternate:
		push := o.mode.Palette()
		if out.SymbolColors != nil {
			push.Slots = out.SymbolColors.Slots
		}
		out.SymbolColors = push
	}
	if o.mode.IsTreehouse() {
		out.SymbolColors = o.mode.Palette()
	}

	if custom && o.registry != nil {
		pillarWidth := 0
		if g.Pillar() {
			pillarWidth = e.w
		}
		o.registry.Record(e.ctx.ID, pillarWidth)
	}
}
