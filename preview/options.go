package preview

import "image/color"

// DefaultSize is the edge length of a rendered preview in pixels.
const DefaultSize = 512

type options struct {
	size       int
	background color.Color
	line       color.Color
	region     color.Color
	lineWidth  float64
}

func defaults() options {
	return options{
		size:       DefaultSize,
		background: color.RGBA{0x20, 0x22, 0x30, 0xff},
		line:       color.RGBA{0x9a, 0xa0, 0xb8, 0xff},
		region:     color.RGBA{0xe0, 0xe0, 0xe0, 0xff},
		lineWidth:  0.035,
	}
}

// Option configures Render.
type Option func(*options)

// WithSize sets the square output edge in pixels. Non-positive values keep
// the default.
func WithSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.size = px
		}
	}
}

// WithColors overrides the background, lattice and region colours. Nil
// arguments keep the defaults.
func WithColors(background, line, region color.Color) Option {
	return func(o *options) {
		if background != nil {
			o.background = background
		}
		if line != nil {
			o.line = line
		}
		if region != nil {
			o.region = region
		}
	}
}

// WithLineWidth sets the segment width as a fraction of the image edge.
func WithLineWidth(frac float64) Option {
	return func(o *options) {
		if frac > 0 {
			o.lineWidth = frac
		}
	}
}
