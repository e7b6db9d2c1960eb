package plcairo

import (
	"image/color"
	"sync"

	"github.com/diamondburned/plstream/driver"
	"github.com/gotk3/gotk3/cairo"
	"github.com/pkg/errors"

	// Register the builtin library, the only one that draws through devices.
	_ "github.com/diamondburned/plstream/engine"
)

// Name is the device name registered by this package. It writes every page to
// a PNG file.
const Name = "cairo"

// Font used for labels.
const (
	FontFamily = "monospace"
	FontSize   = 12
)

func init() {
	driver.Register(Name, func(output string) (driver.Device, error) {
		if output == "" {
			return nil, errors.New("no output file")
		}
		return NewDevice(output), nil
	})
}

// Options controls how lines are stroked.
type Options struct {
	LineCap   cairo.LineCap
	LineJoin  cairo.LineJoin
	AntiAlias cairo.Antialias
}

// DefaultOptions returns butt caps, miter joins and the default antialiasing.
func DefaultOptions() Options {
	return Options{
		LineCap:   cairo.LINE_CAP_BUTT,
		LineJoin:  cairo.LINE_JOIN_MITER,
		AntiAlias: cairo.ANTIALIAS_DEFAULT,
	}
}

// Device draws pages onto a cairo image surface. If it has an output file,
// every finished page is written to it as PNG.
type Device struct {
	output string
	opts   Options

	// mu guards the surface against a GUI painting it from another
	// goroutine.
	mu      sync.Mutex
	surface *cairo.Surface
	cr      *cairo.Context
	width   int
	height  int
	page    int
}

var _ driver.Device = (*Device)(nil)

// NewDevice creates a device. An empty output keeps the pages on the surface
// only, for a GUI to paint.
func NewDevice(output string) *Device {
	return &Device{output: output, opts: DefaultOptions()}
}

// SetOptions changes the stroke options from the next page on.
func (d *Device) SetOptions(opts Options) {
	d.mu.Lock()
	d.opts = opts
	d.mu.Unlock()
}

// BeginPage implements driver.Device. The surface is reused if the page size
// did not change.
func (d *Device) BeginPage(p driver.Page) error {
	if p.Width <= 0 || p.Height <= 0 {
		return errors.Errorf("invalid page size %dx%d", p.Width, p.Height)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.surface == nil || d.width != p.Width || d.height != p.Height {
		d.surface = cairo.CreateImageSurface(cairo.FORMAT_ARGB32, p.Width, p.Height)
		d.width = p.Width
		d.height = p.Height
	}

	d.cr = cairo.Create(d.surface)
	d.cr.SetAntialias(d.opts.AntiAlias)
	d.cr.SetLineCap(d.opts.LineCap)
	d.cr.SetLineJoin(d.opts.LineJoin)
	d.cr.SelectFontFace(FontFamily, cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)
	d.cr.SetFontSize(FontSize)

	bg := Color{}
	if p.Background != nil {
		bg = ColorOf(p.Background)
	}

	d.cr.SetOperator(cairo.OPERATOR_SOURCE)
	d.cr.SetSourceRGBA(bg[0], bg[1], bg[2], bg[3])
	d.cr.Paint()
	d.cr.SetOperator(cairo.OPERATOR_OVER)

	d.page = p.Number
	return nil
}

// Line implements driver.Device.
func (d *Device) Line(x1, y1, x2, y2 float64, c color.Color, width float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cr == nil {
		return
	}

	cc := ColorOf(c)
	d.cr.SetSourceRGBA(cc[0], cc[1], cc[2], cc[3])
	d.cr.SetLineWidth(width)
	d.cr.MoveTo(x1, y1)
	d.cr.LineTo(x2, y2)
	d.cr.Stroke()
}

// Text implements driver.Device.
func (d *Device) Text(x, y float64, c color.Color, s string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cr == nil {
		return
	}

	cc := ColorOf(c)
	d.cr.SetSourceRGBA(cc[0], cc[1], cc[2], cc[3])
	d.cr.MoveTo(x, y)
	d.cr.ShowText(s)
}

// EndPage implements driver.Device.
func (d *Device) EndPage() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cr == nil {
		return nil
	}
	d.cr = nil
	d.surface.Flush()

	if d.output == "" {
		return nil
	}

	path := driver.PagePath(d.output, d.page)
	return errors.Wrapf(d.surface.WriteToPNG(path), "failed to write %q", path)
}

// Close implements driver.Device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cr = nil
	return nil
}

// Paint paints the last drawn page onto cr at the origin. It does nothing
// before the first page.
func (d *Device) Paint(cr *cairo.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.surface == nil {
		return
	}

	cr.SetSourceSurface(d.surface, 0, 0)
	cr.Paint()
}

// Surface returns the surface pages are drawn on, or nil before the first
// page.
func (d *Device) Surface() *cairo.Surface {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.surface
}
