package wire

// PointFlag is the per-point flag set stored in the DotFlags array.
// The same bits are used for the intersection and edge cells of a grid.
type PointFlag int32

// Point flags. Values are part of the wire contract and must not change.
const (
	// Intersection marks a point the path may pass through.
	Intersection PointFlag = 0x1
	// Startpoint marks a point where a path may begin.
	Startpoint PointFlag = 0x2
	// Endpoint marks a path exit.
	Endpoint PointFlag = 0x4
	// NoPoint suppresses the default point rendering; glyph geometry uses it.
	NoPoint PointFlag = 0x8
	// Dot marks a hexagon dot that the path must cross.
	Dot PointFlag = 0x20
	// DotIsBlue colours the dot for the first of two symmetric lines.
	DotIsBlue PointFlag = 0x100
	// DotIsOrange colours the dot for the second of two symmetric lines.
	DotIsOrange PointFlag = 0x200
	// DotIsInvisible hides the dot while keeping its constraint.
	DotIsInvisible PointFlag = 0x1000
	// Gap marks a broken segment.
	Gap PointFlag = 0x100000
	// Row marks a point that lies on a horizontal segment.
	Row PointFlag = 0x200000
	// Column marks a point that lies on a vertical segment.
	Column PointFlag = 0x400000
)

// Has reports whether all bits of mask are set in f.
func (f PointFlag) Has(mask PointFlag) bool { return f&mask == mask }

// HasAny reports whether any bit of mask is set in f.
func (f PointFlag) HasAny(mask PointFlag) bool { return f&mask != 0 }

// Style is the panel-wide bitmask summarising content for the renderer.
type Style int32

// Style bits.
const (
	Symmetrical  Style = 0x2
	NoBlink      Style = 0x4
	HasDots      Style = 0x8
	Is2Color     Style = 0x10
	HasStars     Style = 0x40
	HasTriangles Style = 0x80
	HasStones    Style = 0x100
	HasErasers   Style = 0x1000
	HasShapers   Style = 0x2000
)

// ElementStyles covers every per-decoration summary bit; the encoder clears
// these before recomputing them.
const ElementStyles Style = 0x3fc0

// Has reports whether all bits of mask are set in s.
func (s Style) Has(mask Style) bool { return s&mask == mask }
