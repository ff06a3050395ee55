package wire

import (
	"context"
	"fmt"
)

// Storage reads and writes typed values at named fields of one object.
//
// Contract:
//   - a field that was never written reads as 0 or as an empty slice;
//   - ReadInts/ReadFloats return at most n elements;
//   - writing an empty slice clears the field (zero-length sentinel).
//
// Implementations must be safe for concurrent use.
type Storage interface {
	ReadInt(ctx context.Context, id ObjectID, f Field) (int32, error)
	ReadFloat(ctx context.Context, id ObjectID, f Field) (float32, error)
	ReadInts(ctx context.Context, id ObjectID, f Field, n int) ([]int32, error)
	ReadFloats(ctx context.Context, id ObjectID, f Field, n int) ([]float32, error)
	WriteInt(ctx context.Context, id ObjectID, f Field, v int32) error
	WriteFloat(ctx context.Context, id ObjectID, f Field, v float32) error
	WriteInts(ctx context.Context, id ObjectID, f Field, vs []int32) error
	WriteFloats(ctx context.Context, id ObjectID, f Field, vs []float32) error
}

// reader threads the first error through a sequence of reads.
type reader struct {
	ctx context.Context
	st  Storage
	id  ObjectID
	err error
}

func (r *reader) int(f Field) int32 {
	if r.err != nil {
		return 0
	}
	v, err := r.st.ReadInt(r.ctx, r.id, f)
	if err != nil {
		r.err = fmt.Errorf("wire.Load(%s) %s: %w", r.id, f, err)
	}
	return v
}

func (r *reader) float(f Field) float32 {
	if r.err != nil {
		return 0
	}
	v, err := r.st.ReadFloat(r.ctx, r.id, f)
	if err != nil {
		r.err = fmt.Errorf("wire.Load(%s) %s: %w", r.id, f, err)
	}
	return v
}

// ints reads n values. An absent array yields nil when optional is true.
func (r *reader) ints(f Field, n int, optional bool) []int32 {
	if r.err != nil || n <= 0 {
		return nil
	}
	vs, err := r.st.ReadInts(r.ctx, r.id, f, n)
	if err != nil {
		r.err = fmt.Errorf("wire.Load(%s) %s: %w", r.id, f, err)
		return nil
	}
	if len(vs) == 0 && optional {
		return nil
	}
	if len(vs) < n {
		r.err = fmt.Errorf("wire.Load(%s) %s: got %d of %d: %w", r.id, f, len(vs), n, ErrShortArray)
		return nil
	}
	return vs[:n]
}

func (r *reader) floats(f Field, n int, optional bool) []float32 {
	if r.err != nil || n <= 0 {
		return nil
	}
	vs, err := r.st.ReadFloats(r.ctx, r.id, f, n)
	if err != nil {
		r.err = fmt.Errorf("wire.Load(%s) %s: %w", r.id, f, err)
		return nil
	}
	if len(vs) == 0 && optional {
		return nil
	}
	if len(vs) < n {
		r.err = fmt.Errorf("wire.Load(%s) %s: got %d of %d: %w", r.id, f, len(vs), n, ErrShortArray)
		return nil
	}
	return vs[:n]
}

// Load reads the complete wire state of one panel.
// Optional arrays (decoration colours, reflection table, symbol palette)
// come back nil when the Storage holds nothing for them.
func Load(ctx context.Context, st Storage, id ObjectID) (*Panel, error) {
	if st == nil {
		return nil, ErrNilStorage
	}
	r := &reader{ctx: ctx, st: st, id: id}
	p := &Panel{
		GridSizeX:      r.int(FieldGridSizeX),
		GridSizeY:      r.int(FieldGridSizeY),
		Style:          Style(r.int(FieldStyleFlags)),
		Cylinder:       r.int(FieldIsCylinder) != 0,
		PathWidthScale: r.float(FieldPathWidthScale),
		NeedsRedraw:    r.int(FieldNeedsRedraw) != 0,
	}

	numDots := int(r.int(FieldNumDots))
	numConns := int(r.int(FieldNumConnections))
	numDecorations := int(r.int(FieldNumDecorations))
	numColored := int(r.int(FieldNumColored))

	p.Positions = r.floats(FieldDotPositions, 2*numDots, false)
	p.Flags = toFlags(r.ints(FieldDotFlags, numDots, false))

	as := r.ints(FieldConnectionA, numConns, false)
	bs := r.ints(FieldConnectionB, numConns, false)
	if r.err == nil && numConns > 0 {
		p.Connections = make([]Connection, numConns)
		for i := range p.Connections {
			// stored order is preserved; Connect would hide writer bugs
			p.Connections[i] = Connection{A: as[i], B: bs[i]}
		}
	}

	p.Decorations = r.ints(FieldDecorations, numDecorations, false)
	p.DecorationFlags = r.ints(FieldDecorationFlags, numDecorations, true)
	p.DecorationColors = toColors(r.floats(FieldDecorationColors, 4*numDecorations, true))
	p.Reflection = r.ints(FieldReflectionData, numDots, true)
	p.ColoredRegions = r.ints(FieldColoredRegions, 4*numColored, false)

	push := r.int(FieldPushSymbolColors)
	var slots []RGBA
	for _, f := range symbolFields {
		c := r.floats(f, 4, true)
		if c == nil {
			continue
		}
		if slots == nil {
			slots = make([]RGBA, len(symbolFields))
		}
		slots[slotIndex(f)] = RGBA{c[0], c[1], c[2], c[3]}
	}
	if push != 0 || slots != nil {
		p.SymbolColors = &SymbolColors{Push: push, Slots: slots}
	}

	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// writer threads the first error through a sequence of writes.
type writer struct {
	ctx context.Context
	st  Storage
	id  ObjectID
	err error
}

func (w *writer) int(f Field, v int32) {
	if w.err != nil {
		return
	}
	if err := w.st.WriteInt(w.ctx, w.id, f, v); err != nil {
		w.err = fmt.Errorf("wire.Store(%s) %s: %w", w.id, f, err)
	}
}

func (w *writer) float(f Field, v float32) {
	if w.err != nil {
		return
	}
	if err := w.st.WriteFloat(w.ctx, w.id, f, v); err != nil {
		w.err = fmt.Errorf("wire.Store(%s) %s: %w", w.id, f, err)
	}
}

func (w *writer) ints(f Field, vs []int32) {
	if w.err != nil {
		return
	}
	if err := w.st.WriteInts(w.ctx, w.id, f, vs); err != nil {
		w.err = fmt.Errorf("wire.Store(%s) %s: %w", w.id, f, err)
	}
}

func (w *writer) floats(f Field, vs []float32) {
	if w.err != nil {
		return
	}
	if err := w.st.WriteFloats(w.ctx, w.id, f, vs); err != nil {
		w.err = fmt.Errorf("wire.Store(%s) %s: %w", w.id, f, err)
	}
}

// Store writes the complete wire state of p. Arrays that are nil in p are
// written as the empty sentinel so stale data from an earlier layout does not
// survive. PathWidthScale is only written when non-zero and the symbol palette
// only when p carries one.
func Store(ctx context.Context, st Storage, id ObjectID, p *Panel) error {
	if st == nil {
		return ErrNilStorage
	}
	if p == nil {
		return ErrNilPanel
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("wire.Store(%s): %w", id, err)
	}
	w := &writer{ctx: ctx, st: st, id: id}

	w.int(FieldGridSizeX, p.GridSizeX)
	w.int(FieldGridSizeY, p.GridSizeY)
	w.int(FieldIsCylinder, boolInt(p.Cylinder))

	w.int(FieldNumDots, int32(len(p.Flags)))
	w.floats(FieldDotPositions, p.Positions[:2*len(p.Flags)])
	w.ints(FieldDotFlags, fromFlags(p.Flags))

	as := make([]int32, len(p.Connections))
	bs := make([]int32, len(p.Connections))
	for i, c := range p.Connections {
		as[i], bs[i] = c.A, c.B
	}
	w.int(FieldNumConnections, int32(len(p.Connections)))
	w.ints(FieldConnectionA, as)
	w.ints(FieldConnectionB, bs)

	w.int(FieldNumDecorations, int32(len(p.Decorations)))
	w.ints(FieldDecorations, p.Decorations)
	w.ints(FieldDecorationFlags, p.DecorationFlags)
	w.floats(FieldDecorationColors, fromColors(p.DecorationColors))

	w.ints(FieldReflectionData, p.Reflection)
	w.int(FieldNumColored, int32(p.NumColoredRegions()))
	w.ints(FieldColoredRegions, p.ColoredRegions)

	if sc := p.SymbolColors; sc != nil {
		w.int(FieldPushSymbolColors, sc.Push)
		for i, c := range sc.Slots {
			if i >= len(symbolFields) {
				break
			}
			w.floats(symbolFields[i], c[:])
		}
	}

	w.int(FieldStyleFlags, int32(p.Style))
	if p.PathWidthScale != 0 {
		w.float(FieldPathWidthScale, p.PathWidthScale)
	}
	w.int(FieldNeedsRedraw, boolInt(p.NeedsRedraw))

	return w.err
}

func slotIndex(f Field) int {
	for i, s := range symbolFields {
		if s == f {
			return i
		}
	}
	return -1
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func toFlags(vs []int32) []PointFlag {
	if vs == nil {
		return nil
	}
	out := make([]PointFlag, len(vs))
	for i, v := range vs {
		out[i] = PointFlag(v)
	}
	return out
}

func fromFlags(fs []PointFlag) []int32 {
	out := make([]int32, len(fs))
	for i, f := range fs {
		out[i] = int32(f)
	}
	return out
}

func toColors(vs []float32) []RGBA {
	if vs == nil {
		return nil
	}
	out := make([]RGBA, len(vs)/4)
	for i := range out {
		copy(out[i][:], vs[4*i:4*i+4])
	}
	return out
}

func fromColors(cs []RGBA) []float32 {
	out := make([]float32, 0, 4*len(cs))
	for _, c := range cs {
		out = append(out, c[:]...)
	}
	return out
}
