// Package decoration is the typed view of the symbol that occupies a panel cell.
//
// What:
//
//   - Symbol is a tagged variant: Kind, Color and the shape parameters.
//   - Pack and Unpack convert between Symbol and the packed int32 code that
//     the wire format carries. Pack(Unpack(c)) == c for every code.
//   - Color carries the runtime palette (RGBA) and ColorMode rewrites colours
//     for the panels that use an alternative palette.
//
// Code layout:
//
//	bits  0-3   colour
//	bits  4-7   extra (kept, unused by known kinds)
//	bits  8-11  base kind (stone 1, star 2, poly 4, eraser 5, triangle 6, custom 7, empty A)
//	bits 12-15  param1 (poly: can-rotate 1, negative 2; arrow: ticks; dart: direction)
//	bits 16-19  param2 (count, numeral, direction)
//	bits 20-23  param3
//	bits 24-27  custom selector when the base kind is 7
//	bits 16-31  polyomino mask when the base kind is 4
//
// Codes that do not fit any known kind unpack to KindUnknown and keep their
// raw value.
package decoration
