// SPDX-License-Identifier: MIT

package preview

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/katalvlaran/panelwire/codec"
	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/wire"
)

var (
	// ErrNilPanel indicates Render was called without a panel.
	ErrNilPanel = errors.New("preview: nil panel")

	// ErrEmptyPanel indicates the panel has no points to draw.
	ErrEmptyPanel = errors.New("preview: empty panel")
)

// Render draws p. Cell symbols are placed by decoding p with a default
// PanelContext for id; a panel that does not decode still gets its geometry.
func Render(id wire.ObjectID, p *wire.Panel, opts ...Option) (image.Image, error) {
	if p == nil {
		return nil, ErrNilPanel
	}
	if p.NumPoints() == 0 {
		return nil, fmt.Errorf("preview.Render(%s): %w", id, ErrEmptyPanel)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("preview.Render(%s): %w", id, err)
	}
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}

	r := &renderer{dc: gg.NewContext(o.size, o.size), p: p, o: o, size: float64(o.size)}
	r.dc.SetColor(o.background)
	r.dc.Clear()
	r.lattice()
	r.regions()
	r.points()
	if g, _, err := codec.Decode(codec.PanelContext{ID: id}, p); err == nil {
		r.symbols(g)
	}
	return r.dc.Image(), nil
}

type renderer struct {
	dc   *gg.Context
	p    *wire.Panel
	o    options
	size float64
}

// px maps wire coordinates (y up, unit square) to pixels.
func (r *renderer) px(x, y float32) (float64, float64) {
	return float64(x) * r.size, (1 - float64(y)) * r.size
}

func (r *renderer) point(i int32) (float64, float64) {
	return r.px(r.p.Point(int(i)))
}

func (r *renderer) lattice() {
	r.dc.SetColor(r.o.line)
	r.dc.SetLineWidth(r.o.lineWidth * r.size)
	r.dc.SetLineCapRound()
	n := int32(r.p.NumPoints())
	for _, c := range r.p.Connections {
		if c.A < 0 || c.B < 0 || c.A >= n || c.B >= n {
			continue
		}
		ax, ay := r.point(c.A)
		bx, by := r.point(c.B)
		r.dc.DrawLine(ax, ay, bx, by)
		r.dc.Stroke()
	}
}

func (r *renderer) regions() {
	r.dc.SetColor(r.o.region)
	n := int32(r.p.NumPoints())
	rs := r.p.ColoredRegions
	for i := 0; i+3 < len(rs); i += 4 {
		a, b, c := rs[i], rs[i+1], rs[i+2]
		if a == b || min(a, b, c) < 0 || max(a, b, c) >= n {
			continue
		}
		r.dc.MoveTo(r.point(a))
		r.dc.LineTo(r.point(b))
		r.dc.LineTo(r.point(c))
		r.dc.ClosePath()
		r.dc.Fill()
	}
}

func (r *renderer) points() {
	w := r.o.lineWidth * r.size
	for i, f := range r.p.Flags {
		x, y := r.point(int32(i))
		switch {
		case f.Has(wire.Startpoint):
			r.dc.SetColor(r.o.line)
			r.dc.DrawCircle(x, y, w*1.25)
			r.dc.Fill()
		case f.Has(wire.Dot) && !f.Has(wire.DotIsInvisible):
			r.dc.SetRGB(0.1, 0.1, 0.1)
			switch {
			case f.Has(wire.DotIsBlue):
				r.dc.SetRGB(0.2, 0.6, 1)
			case f.Has(wire.DotIsOrange):
				r.dc.SetRGB(1, 0.6, 0.1)
			}
			r.dc.DrawRegularPolygon(6, x, y, w*0.45, 0)
			r.dc.Fill()
		}
	}
}

// symbols draws the native cell kinds; custom kinds are already present as
// coloured regions.
func (r *renderer) symbols(g *grid.Grid) {
	b := g.Bounds()
	u := float64(g.UnitWidth()) * r.size
	for y := 1; y < g.Height(); y += 2 {
		for x := 1; x < g.Width(); x += 2 {
			s, err := g.Symbol(x, y)
			if err != nil || s.IsZero() {
				continue
			}
			cx, cy := r.px(b.MinX+float32(x)*g.UnitWidth(), b.MinY+float32(g.Height()-1-y)*g.UnitHeight())
			r.symbol(s, cx, cy, u)
		}
	}
}

func (r *renderer) symbol(s decoration.Symbol, cx, cy, u float64) {
	c := s.Color.RGBA()
	if c[3] == 0 {
		c = wire.RGBA{1, 1, 1, 1}
	}
	r.dc.SetRGBA(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
	switch s.Kind {
	case decoration.Stone:
		r.dc.DrawRoundedRectangle(cx-u*0.3, cy-u*0.3, u*0.6, u*0.6, u*0.12)
		r.dc.Fill()
	case decoration.Star:
		r.dc.DrawRegularPolygon(4, cx, cy, u*0.35, 0)
		r.dc.DrawRegularPolygon(4, cx, cy, u*0.35, math.Pi/4)
		r.dc.Fill()
	case decoration.Triangle:
		n := max(1, min(s.Count(), 3))
		step := u * 0.3
		x0 := cx - step*float64(n-1)/2
		for i := 0; i < n; i++ {
			r.dc.DrawRegularPolygon(3, x0+float64(i)*step, cy, u*0.14, -math.Pi/2)
		}
		r.dc.Fill()
	case decoration.Eraser:
		r.dc.SetLineWidth(u * 0.1)
		for k := 0; k < 3; k++ {
			a := -math.Pi/2 + float64(k)*2*math.Pi/3
			r.dc.DrawLine(cx, cy, cx+math.Cos(a)*u*0.3, cy+math.Sin(a)*u*0.3)
		}
		r.dc.Stroke()
	case decoration.Poly:
		r.poly(s, cx, cy, u)
	}
}

// poly draws the 4x4 mask centred on the cell, row 0 on top.
func (r *renderer) poly(s decoration.Symbol, cx, cy, u float64) {
	rows, cols := 0, 0
	for i := 0; i < 16; i++ {
		if s.Shape&(1<<i) != 0 {
			rows, cols = max(rows, i/4+1), max(cols, i%4+1)
		}
	}
	sq := u * 0.16
	x0 := cx - sq*float64(cols)/2
	y0 := cy - sq*float64(rows)/2
	for i := 0; i < 16; i++ {
		if s.Shape&(1<<i) == 0 {
			continue
		}
		r.dc.DrawRectangle(x0+float64(i%4)*sq, y0+float64(i/4)*sq, sq*0.9, sq*0.9)
	}
	if s.Negative() {
		r.dc.SetLineWidth(sq * 0.2)
		r.dc.Stroke()
		return
	}
	r.dc.Fill()
}

// Thumbnail scales img to fit a px-by-px box, keeping its aspect ratio.
func Thumbnail(img image.Image, px int) image.Image {
	return imaging.Fit(img, px, px, imaging.Lanczos)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}
