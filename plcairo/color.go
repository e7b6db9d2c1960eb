package plcairo

import (
	"image/color"

	"github.com/gotk3/gotk3/gdk"
)

// Color is a colour in cairo's floating point RGBA form. It implements
// color.Color, so it can be handed to a stream's colour map directly.
type Color [4]float64

var _ color.Color = Color{}

// ColorFromGDK converts a GDK colour.
func ColorFromGDK(rgba gdk.RGBA) Color {
	var c Color
	copy(c[:], rgba.Floats())
	return c
}

// ColorOf converts any colour. Colours that are already a Color are returned
// as-is.
func ColorOf(c color.Color) Color {
	switch c := c.(type) {
	case Color:
		return c
	case *Color:
		return *c
	}

	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}

	// color.Color is premultiplied; cairo wants it straight.
	return Color{
		float64(r) / float64(a),
		float64(g) / float64(a),
		float64(b) / float64(a),
		float64(a) / 0xFFFF,
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c[3] * 0xFFFF)
	r = uint32(c[0] * c[3] * 0xFFFF)
	g = uint32(c[1] * c[3] * 0xFFFF)
	b = uint32(c[2] * c[3] * 0xFFFF)
	return
}
