package glyph

import (
	"math"

	"github.com/katalvlaran/panelwire/decoration"
)

// Template is the geometry of one symbol instance before placement.
type Template struct {
	Points []float32 // x, y pairs in [0,1]²
	Tris   []int32   // (a, b, c, 0) per triangle, indices into Points
	Angle  float64   // counter-clockwise rotation in degrees
}

// NumPoints returns the number of template points.
func (t Template) NumPoints() int { return len(t.Points) / 2 }

// Lookup builds the template for s. It reports false for kinds that are not
// custom and for parameters outside the kind's table.
func Lookup(s decoration.Symbol) (Template, bool) {
	var t Template
	switch s.Kind {
	case decoration.Arrow:
		t = arrow(s.Ticks(), s.Direction())
	case decoration.Mine:
		t = mine(s.Count())
	case decoration.Head:
		t = head(s.Direction())
	case decoration.Mushroom:
		t = Template{Points: mushroomPoints, Tris: fan(len(mushroomPoints) / 2)}
	case decoration.Ghost:
		t = ghost()
	case decoration.Bar:
		t = bar(int(s.Param2))
	case decoration.Antitriangle:
		t = antitriangle(s.Count())
	case decoration.Dart:
		t = dart(s.Count(), s.Direction())
	case decoration.Rain:
		t = rain(s.Direction())
	case decoration.Pointer:
		t = pointer(int(s.Param2))
	case decoration.Diamond:
		t = diamond(int(s.Param2))
	case decoration.Dice:
		t = dice(s.Count())
	case decoration.Bell:
		t = bell(s.Direction())
	case decoration.Tent:
		t = Template{Points: tentPoints, Tris: tentTris}
	case decoration.Circle:
		t = circle()
	}
	return t, len(t.Points) > 0
}

// fan covers n points with triangles sharing point 0.
func fan(n int) []int32 {
	var tris []int32
	for i := 0; i+2 < n; i++ {
		tris = append(tris, 0, int32(i+1), int32(i+2), 0)
	}
	return tris
}

// strip covers n points starting at off with consecutive triangles.
func strip(n, off int) []int32 {
	var tris []int32
	for i := 0; i+2 < n; i++ {
		tris = append(tris, int32(off+i), int32(off+i+1), int32(off+i+2), 0)
	}
	return tris
}

// repeat stamps basic for each group of stride points among n.
func repeat(basic []int32, n, stride int) []int32 {
	var tris []int32
	for off := 0; off+stride <= n; off += stride {
		for j, v := range basic {
			if j%4 == 3 {
				tris = append(tris, 0)
				continue
			}
			tris = append(tris, v+int32(off))
		}
	}
	return tris
}

func concat(parts ...[]float32) []float32 {
	var out []float32
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var eightWay = [8]float64{-90, 90, 0, 180, -45, 45, 135, -135}

func arrow(ticks, dir int) Template {
	if dir < 0 || dir >= len(eightWay) {
		return Template{}
	}
	pts := []float32{0.1, 0.45, 0.1, 0.55, 0.85, 0.45, 0.85, 0.55,
		0.9, 0.5, 0.75, 0.5, 0.45, 0.2, 0.6, 0.2, 0.45, 0.8, 0.6, 0.8}
	tris := []int32{0, 1, 2, 0, 1, 2, 3, 0,
		4, 5, 7, 0, 5, 6, 7, 0, 4, 5, 9, 0, 5, 8, 9, 0}
	if ticks >= 2 {
		pts = append(pts, 0.7, 0.5, 0.55, 0.5, 0.25, 0.2, 0.4, 0.2, 0.25, 0.8, 0.4, 0.8)
		tris = append(tris, 10, 11, 13, 0, 11, 12, 13, 0, 10, 11, 15, 0, 11, 14, 15, 0)
	}
	if ticks == 3 {
		pts = append(pts, 0.5, 0.5, 0.35, 0.5, 0.05, 0.2, 0.2, 0.2, 0.05, 0.8, 0.2, 0.8)
		tris = append(tris, 16, 17, 19, 0, 17, 18, 19, 0, 16, 17, 21, 0, 17, 20, 21, 0)
		if dir > 3 {
			// diagonal three-tick arrows would clip the box corner
			for i := 0; i < len(pts); i += 2 {
				pts[i] += 0.1
			}
		}
	}
	return Template{Points: pts, Tris: tris, Angle: eightWay[dir]}
}

// sevenSegment bit i lights mineSegments[6-i].
var sevenSegment = [10]int{
	0b1011111, 0b0000101, 0b1110110, 0b1110101, 0b0101101,
	0b1111001, 0b1111011, 0b1001101, 0b1111111, 0b1111101,
}

var mineSegments = [7][]float32{
	{0.35, 0.8, 0.4, 0.85, 0.6, 0.85, 0.65, 0.8, 0.6, 0.75, 0.4, 0.75}, // upper
	{0.35, 0.5, 0.4, 0.55, 0.6, 0.55, 0.65, 0.5, 0.6, 0.45, 0.4, 0.45}, // middle
	{0.35, 0.2, 0.4, 0.25, 0.6, 0.25, 0.65, 0.2, 0.6, 0.15, 0.4, 0.15}, // lower
	{0.35, 0.8, 0.4, 0.75, 0.4, 0.55, 0.35, 0.5, 0.3, 0.55, 0.3, 0.75}, // upper left
	{0.65, 0.8, 0.7, 0.75, 0.7, 0.55, 0.65, 0.5, 0.6, 0.55, 0.6, 0.75}, // upper right
	{0.35, 0.5, 0.4, 0.45, 0.4, 0.25, 0.35, 0.2, 0.3, 0.25, 0.3, 0.45}, // lower left
	{0.65, 0.5, 0.7, 0.45, 0.7, 0.25, 0.65, 0.2, 0.6, 0.25, 0.6, 0.45}, // lower right
}

func mine(num int) Template {
	if num < 0 || num >= len(sevenSegment) {
		return Template{}
	}
	var pts []float32
	for i := 0; i < 7; i++ {
		if sevenSegment[num]>>i&1 == 1 {
			pts = append(pts, mineSegments[6-i]...)
		}
	}
	basic := []int32{0, 1, 2, 0, 0, 2, 3, 0, 0, 3, 4, 0, 0, 4, 5, 0}
	return Template{Points: pts, Tris: repeat(basic, len(pts)/2, 6)}
}

var headPoints = []float32{
	0.5, 0.7, 0.45, 0.9, 0.4, 0.88, 0.35, 0.85, 0.3, 0.8, 0.25, 0.72,
	0.2, 0.6, 0.15, 0.55, 0.1, 0.5, 0.2, 0.51, 0.25, 0.54, 0.275, 0.4,
	0.3, 0.3, 0.35, 0.25, 0.4, 0.235, 0.45, 0.22, 0.5, 0.21, 0.55, 0.22,
	0.6, 0.235, 0.65, 0.25, 0.7, 0.3, 0.725, 0.4, 0.75, 0.54, 0.8, 0.51,
	0.9, 0.5, 0.85, 0.55, 0.8, 0.6, 0.75, 0.72, 0.7, 0.8, 0.65, 0.85,
	0.6, 0.88, 0.55, 0.9, 0.45, 0.9,
}

func head(dir int) Template {
	if dir < 0 || dir >= len(eightWay) {
		return Template{}
	}
	return Template{Points: headPoints, Tris: fan(len(headPoints) / 2), Angle: eightWay[dir]}
}

var mushroomPoints = []float32{
	0.5, 0.6, 0.5, 0.8, 0.3, 0.78, 0.2, 0.7, 0.1, 0.6, 0.16, 0.53,
	0.42, 0.5, 0.4, 0.2, 0.45, 0.16, 0.5, 0.15, 0.55, 0.16, 0.6, 0.2,
	0.58, 0.5, 0.84, 0.53, 0.9, 0.6, 0.8, 0.7, 0.7, 0.78, 0.5, 0.8,
}

var ghostHalf = []float32{
	0.5, 0.9, 0.4, 0.65, 0.4, 0.88, 0.38, 0.68, 0.3, 0.8, 0.32, 0.68,
	0.25, 0.7, 0.3, 0.65, 0.225, 0.65, 0.32, 0.62, 0.2, 0.6, 0.35, 0.6,
	0.1, 0.2, 0.3, 0.3, 0.35, 0.6, 0.4, 0.2, 0.35, 0.6, 0.5, 0.3,
	0.38, 0.62, 0.5, 0.5, 0.4, 0.65, 0.5, 0.7, 0.5, 0.9,
}

// ghost is the left half plus its mirror image.
func ghost() Template {
	n := len(ghostHalf) / 2
	pts := append([]float32(nil), ghostHalf...)
	for i := 0; i < len(ghostHalf); i += 2 {
		pts = append(pts, 1-ghostHalf[i], ghostHalf[i+1])
	}
	return Template{Points: pts, Tris: append(strip(n, 0), strip(n, n)...)}
}

// barPatterns lists the arms (top, right, bottom, left from the high bit) per variant.
var barPatterns = [14]int{
	0b0000, 0b1100, 0b0110, 0b0011, 0b1001, 0b0111, 0b1011,
	0b1101, 0b1110, 0b1111, 0b1010, 0b0101, 0b1010, 0b0101,
}

var barArms = [4][]float32{
	{0.5, 0.5, 0.4, 0.6, 0.4, 0.9, 0.6, 0.9, 0.6, 0.6}, // top
	{0.5, 0.5, 0.6, 0.6, 0.9, 0.6, 0.9, 0.4, 0.6, 0.4}, // right
	{0.5, 0.5, 0.6, 0.4, 0.6, 0.1, 0.4, 0.1, 0.4, 0.4}, // bottom
	{0.5, 0.5, 0.4, 0.4, 0.1, 0.4, 0.1, 0.6, 0.4, 0.6}, // left
}

func bar(num int) Template {
	if num < 0 || num >= len(barPatterns) {
		return Template{}
	}
	pts := []float32{0.4, 0.4, 0.4, 0.6, 0.6, 0.6, 0.6, 0.4}
	tris := []int32{0, 1, 2, 0, 0, 2, 3, 0}
	arm := []int32{4, 5, 6, 0, 4, 6, 7, 0, 4, 7, 8, 0}
	arms := 0
	for i := 0; i < 4; i++ {
		if barPatterns[num]>>i&1 == 1 {
			pts = append(pts, barArms[3-i]...)
			for j, v := range arm {
				if j%4 == 3 {
					tris = append(tris, 0)
					continue
				}
				tris = append(tris, v+int32(5*arms))
			}
			arms++
		}
	}
	return Template{Points: pts, Tris: tris}
}

const triHalf = 0.17320508

// spike is the triangle (and, for darts, its notch point) shifted by (dx, dy).
func spike(dx, dy float32, notch bool) []float32 {
	p := []float32{
		0.5 + dx, 0.3 + dy,
		0.5 + dx + triHalf, 0.6 + dy,
		0.5 + dx - triHalf, 0.6 + dy,
	}
	if notch {
		p = append(p, 0.5+dx, 0.5+dy)
	}
	return p
}

// spikeOffsets lists the shifts for 1..4 copies.
var spikeOffsets = [5][][2]float32{
	{},
	{{0, 0}},
	{{-0.2, 0}, {0.2, 0}},
	{{0, 0}, {-0.4, 0}, {0.4, 0}},
	{{0.2, 0.2}, {0.2, -0.2}, {-0.2, 0.2}, {-0.2, -0.2}},
}

func spikes(count int, notch bool) []float32 {
	var pts []float32
	for _, off := range spikeOffsets[count] {
		pts = append(pts, spike(off[0], off[1], notch)...)
	}
	return pts
}

func antitriangle(num int) Template {
	if num < 1 || num > 4 {
		return Template{}
	}
	pts := spikes(num, false)
	return Template{Points: pts, Tris: repeat([]int32{0, 1, 2, 0}, len(pts)/2, 3)}
}

var dartAngles = [8]float64{0, -180, 90, -90, 45, 135, -135, -45}

func dart(count, dir int) Template {
	if dir < 0 || dir >= len(dartAngles) {
		return Template{}
	}
	var pts []float32
	if count >= 1 && count <= 4 {
		pts = spikes(count, true)
	} else {
		pts = []float32{0.2, 0.3, 0.2 + triHalf, 0.6, 0.2 - triHalf, 0.6, 0.2, 0.2}
	}
	return Template{
		Points: pts,
		Tris:   repeat([]int32{0, 1, 3, 0, 0, 2, 3, 0}, len(pts)/2, 4),
		Angle:  dartAngles[dir],
	}
}

var rainPoints = []float32{
	0.5, 0.7, 0.5, 0.9, 0.4, 0.8, 0.35, 0.7, 0.3, 0.6, 0.25, 0.5,
	0.22, 0.4, 0.23, 0.3, 0.3, 0.2, 0.4, 0.15, 0.5, 0.1, 0.6, 0.15,
	0.7, 0.2, 0.77, 0.3, 0.78, 0.4, 0.75, 0.5, 0.7, 0.6, 0.65, 0.7,
	0.6, 0.8, 0.5, 0.9,
}

var rainAngles = [8]float64{0, 180, 90, -90, -45, 45, 135, -135}

func rain(dir int) Template {
	if dir < 0 || dir >= len(rainAngles) {
		return Template{}
	}
	return Template{Points: rainPoints, Tris: fan(len(rainPoints) / 2), Angle: rainAngles[dir]}
}

// pointerArms are up, down, left, right, selected by bits 0..3.
var pointerArms = [4][]float32{
	{0.5, 0.9, 0.6, 0.8, 0.4, 0.8, 0.55, 0.8, 0.45, 0.8, 0.55, 0.45, 0.45, 0.45},
	{0.5, 0.1, 0.6, 0.2, 0.4, 0.2, 0.55, 0.2, 0.45, 0.2, 0.55, 0.55, 0.45, 0.55},
	{0.1, 0.5, 0.2, 0.6, 0.2, 0.4, 0.2, 0.55, 0.2, 0.45, 0.55, 0.55, 0.55, 0.45},
	{0.9, 0.5, 0.8, 0.6, 0.8, 0.4, 0.8, 0.55, 0.8, 0.45, 0.45, 0.55, 0.45, 0.45},
}

func pointer(mask int) Template {
	var pts []float32
	for i := 0; i < 4; i++ {
		if mask>>i&1 == 1 {
			pts = append(pts, pointerArms[i]...)
		}
	}
	basic := []int32{0, 1, 2, 0, 3, 4, 6, 0, 3, 5, 6, 0}
	return Template{Points: pts, Tris: repeat(basic, len(pts)/2, 7)}
}

// frameTris joins an outer and an inner quad (points 0..3 and 4..7) into a ring.
var frameTris = []int32{0, 1, 4, 0, 1, 4, 5, 0, 1, 2, 5, 0, 2, 5, 6, 0,
	2, 3, 6, 0, 3, 6, 7, 0, 3, 4, 7, 0, 4, 0, 3, 0}

func diamond(num int) Template {
	pts := []float32{.5, .05, .95, .5, .5, .95, .05, .5, .5, .2, .8, .5, .5, .8, .2, .5}
	tris := append([]int32(nil), frameTris...)
	switch num {
	case 2:
		pts = append(pts, .5, .4, .4, .5, .5, .6, .6, .5)
		tris = append(tris, 8, 9, 10, 0, 10, 11, 8, 0)
	case 3:
		pts = append(pts, .45, .1, .55, .1, .55, .9, .45, .9)
		tris = append(tris, 8, 9, 10, 0, 10, 11, 8, 0)
	case 4:
		pts = append(pts, .45, .9, .55, .9, .55, .45, .45, .45,
			.5, .55, .5, .45, .3, .4, .3, .3, .7, .4, .7, .3)
		tris = append(tris, 8, 9, 10, 0, 10, 11, 8, 0,
			12, 13, 14, 0, 13, 14, 15, 0, 12, 13, 16, 0, 13, 16, 17, 0)
	case 5:
		pts = append(pts, .45, .1, .55, .1, .55, .9, .45, .9,
			.1, .45, .1, .55, .9, .55, .9, .45)
		tris = append(tris, 8, 9, 10, 0, 10, 11, 8, 0, 12, 13, 14, 0, 14, 15, 12, 0)
	}
	return Template{Points: pts, Tris: tris}
}

var dicePips = [6][]int{{4}, {2, 6}, {2, 4, 6}, {0, 2, 6, 8}, {0, 2, 4, 6, 8}, {0, 2, 3, 5, 6, 8}}

func dice(num int) Template {
	if num < 1 || num > len(dicePips) {
		return Template{}
	}
	pts := []float32{.1, .1, .1, .9, .9, .9, .9, .1, .2, .2, .2, .8, .8, .8, .8, .2}
	tris := append([]int32(nil), frameTris...)
	for i, pip := range dicePips[num-1] {
		dx, dy := float32(pip%3)*.15, float32(pip/3)*.15
		pts = append(pts, .3+dx, .3+dy, .3+dx, .4+dy, .4+dx, .4+dy, .4+dx, .3+dy)
		b := int32(8 + 4*i)
		tris = append(tris, b, b+1, b+2, 0, b+2, b+3, b, 0)
	}
	return Template{Points: pts, Tris: tris}
}

var bellPoints = []float32{
	0.5, 0.8, 0.1, 0.8, 0.2, 0.7, 0.25, 0.6, 0.25, 0.4, 0.3, 0.3,
	0.4, 0.2, 0.6, 0.2, 0.7, 0.3, 0.75, 0.4, 0.75, 0.6, 0.8, 0.7, 0.9, 0.8,
}

var bellAngles = [4]float64{180, 90, 0, -90}

func bell(dir int) Template {
	if dir < 1 || dir > len(bellAngles) {
		return Template{}
	}
	return Template{Points: bellPoints, Tris: fan(len(bellPoints) / 2), Angle: bellAngles[dir-1]}
}

var tentPoints = []float32{.5, .8, .2, .2, .8, .2, .5, .7, .3, .3, .7, .3, .5, .55, .38, .3, .62, .3}

var tentTris = []int32{0, 1, 3, 0, 1, 3, 4, 0, 1, 2, 4, 0, 2, 4, 5, 0, 2, 0, 5, 0, 0, 5, 3, 0, 6, 7, 8, 0}

// circle is a disc of radius 0.4 in 20° steps around point 0.
func circle() Template {
	pts := []float32{.5, .5}
	var tris []int32
	for i, a := 1, 0; a <= 360; i, a = i+1, a+20 {
		rad := float64(a) * math.Pi / 180
		pts = append(pts, .5+float32(math.Cos(rad))*.4, .5+float32(math.Sin(rad))*.4)
		if a != 0 {
			tris = append(tris, 0, int32(i-1), int32(i), 0)
		}
	}
	return Template{Points: pts, Tris: tris}
}
