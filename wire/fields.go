package wire

import "fmt"

// ObjectID identifies one panel object inside the external process.
type ObjectID uint32

// String renders the id the way panel ids are usually written (0x0A3B5).
func (id ObjectID) String() string { return fmt.Sprintf("0x%05X", uint32(id)) }

// Field is a named offset inside a panel object. The numeric values are the
// keys the Storage uses; they carry no meaning beyond identity here.
type Field uint32

// Field catalog.
const (
	FieldPathColor        Field = 0xC0
	FieldSymbolA          Field = 0x240
	FieldSymbolB          Field = 0x250
	FieldSymbolC          Field = 0x260
	FieldSymbolD          Field = 0x270
	FieldSymbolE          Field = 0x280
	FieldPushSymbolColors Field = 0x288
	FieldNeedsRedraw      Field = 0x2B0
	FieldStyleFlags       Field = 0x2C8
	FieldPathWidthScale   Field = 0x2D0
	FieldGridSizeX        Field = 0x374
	FieldGridSizeY        Field = 0x378
	FieldNumDots          Field = 0x37C
	FieldNumConnections   Field = 0x380
	FieldDotPositions     Field = 0x388
	FieldDotFlags         Field = 0x390
	FieldConnectionA      Field = 0x398
	FieldConnectionB      Field = 0x3A0
	FieldNumDecorations   Field = 0x3B0
	FieldDecorations      Field = 0x3B8
	FieldDecorationFlags  Field = 0x3C0
	FieldDecorationColors Field = 0x3C8
	FieldTracedEdges      Field = 0x3E0
	FieldTracedEdgeData   Field = 0x3E8
	FieldReflectionData   Field = 0x400
	FieldNumColored       Field = 0x418
	FieldColoredRegions   Field = 0x420
	FieldIsCylinder       Field = 0x5C0
)

var fieldNames = map[Field]string{
	FieldPathColor:        "PATH_COLOR",
	FieldSymbolA:          "SYMBOL_A",
	FieldSymbolB:          "SYMBOL_B",
	FieldSymbolC:          "SYMBOL_C",
	FieldSymbolD:          "SYMBOL_D",
	FieldSymbolE:          "SYMBOL_E",
	FieldPushSymbolColors: "PUSH_SYMBOL_COLORS",
	FieldNeedsRedraw:      "NEEDS_REDRAW",
	FieldStyleFlags:       "STYLE_FLAGS",
	FieldPathWidthScale:   "PATH_WIDTH_SCALE",
	FieldGridSizeX:        "GRID_SIZE_X",
	FieldGridSizeY:        "GRID_SIZE_Y",
	FieldNumDots:          "NUM_DOTS",
	FieldNumConnections:   "NUM_CONNECTIONS",
	FieldDotPositions:     "DOT_POSITIONS",
	FieldDotFlags:         "DOT_FLAGS",
	FieldConnectionA:      "DOT_CONNECTION_A",
	FieldConnectionB:      "DOT_CONNECTION_B",
	FieldNumDecorations:   "NUM_DECORATIONS",
	FieldDecorations:      "DECORATIONS",
	FieldDecorationFlags:  "DECORATION_FLAGS",
	FieldDecorationColors: "DECORATION_COLORS",
	FieldTracedEdges:      "TRACED_EDGES",
	FieldTracedEdgeData:   "TRACED_EDGE_DATA",
	FieldReflectionData:   "REFLECTION_DATA",
	FieldNumColored:       "NUM_COLORED_REGIONS",
	FieldColoredRegions:   "COLORED_REGIONS",
	FieldIsCylinder:       "IS_CYLINDER",
}

// String returns the catalog name, or the hex offset for unknown fields.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(0x%X)", uint32(f))
}

// symbolFields lists the five palette slots in order.
var symbolFields = [5]Field{FieldSymbolA, FieldSymbolB, FieldSymbolC, FieldSymbolD, FieldSymbolE}
