package software

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// minWidth is the thinnest line drawn, in pixels.
const minWidth = 1

// raster is a page being drawn in memory.
type raster struct {
	img *image.RGBA
	z   vector.Rasterizer
}

func newRaster(w, h int, bg color.Color) *raster {
	r := &raster{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	if bg != nil {
		draw.Draw(r.img, r.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	r.z.Reset(w, h)
	return r
}

// line strokes a segment as a quad of the given width. Zero length segments
// are skipped.
func (r *raster) line(x1, y1, x2, y2 float64, c color.Color, width float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	if width < minWidth {
		width = minWidth
	}

	// normal scaled to half the width
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over

	r.z.MoveTo(float32(x1+nx), float32(y1+ny))
	r.z.LineTo(float32(x2+nx), float32(y2+ny))
	r.z.LineTo(float32(x2-nx), float32(y2-ny))
	r.z.LineTo(float32(x1-nx), float32(y1-ny))
	r.z.ClosePath()

	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

// text draws s with its baseline starting at x, y.
func (r *raster) text(x, y float64, c color.Color, s string) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(s)
}
