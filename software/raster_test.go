package software

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var white = color.RGBA{255, 255, 255, 255}

func lit(r *raster, x, y int) bool {
	return r.img.RGBAAt(x, y).R > 250
}

func painted(r *raster) int {
	var n int
	b := r.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r.img.RGBAAt(x, y).R > 0 {
				n++
			}
		}
	}
	return n
}

func TestRasterLine(t *testing.T) {
	r := newRaster(20, 20, color.Black)
	r.line(2, 10, 18, 10, white, 2)

	assert.True(t, lit(r, 10, 9))
	assert.True(t, lit(r, 10, 10))
	assert.False(t, lit(r, 10, 5))
	assert.False(t, lit(r, 1, 10))
}

func TestRasterLineMinWidth(t *testing.T) {
	r := newRaster(20, 20, color.Black)
	r.line(2, 10, 18, 10, white, 0)
	assert.NotZero(t, painted(r))
}

func TestRasterLineDegenerate(t *testing.T) {
	r := newRaster(20, 20, color.Black)
	r.line(5, 5, 5, 5, white, 3)
	assert.Zero(t, painted(r))
}

func TestRasterText(t *testing.T) {
	r := newRaster(40, 20, color.Black)
	r.text(2, 15, white, "Hi")
	assert.NotZero(t, painted(r))
}
