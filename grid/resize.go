package grid

import "fmt"

// Resize changes the grid to width×height.
//
// Starts and exits on the old right column or bottom row move to the new
// one. The bounding box is re-centred on 0.5 with the old spacing unless the
// grid is square both before and after. Codes keep their coordinates; new
// positions start at 0. Resize marks the grid as resized, which makes the
// encoder replace colored regions with a full cover.
// Complexity: O(W×H).
func (g *Grid) Resize(width, height int) error {
	if err := checkDimensions(width, height, g.pillar); err != nil {
		return fmt.Errorf("Grid.Resize(%d,%d): %w", width, height, err)
	}
	for i := range g.startpoints {
		s := &g.startpoints[i]
		if s.X == g.width-1 {
			s.X = width - 1
		}
		if s.Y == g.height-1 {
			s.Y = height - 1
		}
	}
	for i := range g.endpoints {
		e := &g.endpoints[i]
		if e.X == g.width-1 {
			e.X = width - 1
		}
		if e.Y == g.height-1 {
			e.Y = height - 1
		}
	}

	if g.width != g.height || width != height {
		b := g.bounds
		maxDim := max(b.MaxX-b.MinX, b.MaxY-b.MinY)
		unit := maxDim / float32(max(width-1, height-1))
		g.bounds = Bounds{
			MinX: 0.5 - unit*float32(width-1)/2,
			MaxX: 0.5 + unit*float32(width-1)/2,
			MinY: 0.5 - unit*float32(height-1)/2,
			MaxY: 0.5 + unit*float32(height-1)/2,
		}
	}

	cells := make([]Code, width*height)
	for y := 0; y < min(height, g.height); y++ {
		for x := 0; x < min(width, g.width); x++ {
			cells[y*width+x] = g.cells[y*g.width+x]
		}
	}
	g.cells = cells
	g.width, g.height = width, height
	g.rescale()
	g.resized = true
	return nil
}
