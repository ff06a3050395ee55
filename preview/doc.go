// Package preview rasterises a wire panel for humans.
//
// Render draws the lattice, start and exit points, dots, coloured-region
// geometry and the native cell symbols with fogleman/gg. Thumbnail and
// EncodePNG wrap disintegration/imaging for scaling and output.
//
// The image is a sketch of the puzzle, not a copy of the game's renderer.
package preview
