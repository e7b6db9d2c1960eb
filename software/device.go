package software

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"sync"

	"github.com/diamondburned/plstream/driver"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Register the builtin library, the only one that draws through devices.
	_ "github.com/diamondburned/plstream/engine"
)

// Encoder writes a finished page.
type Encoder func(w io.Writer, img image.Image) error

// Device names registered by this package.
const (
	Memory = "mem"
	PNG    = "png"
	BMP    = "bmp"
	TIFF   = "tiff"
)

var encoders = map[string]Encoder{
	PNG:  png.Encode,
	BMP:  bmp.Encode,
	TIFF: encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

func init() {
	driver.Register(Memory, func(output string) (driver.Device, error) {
		return NewDevice(output, nil), nil
	})

	for name, enc := range encoders {
		enc := enc
		driver.Register(name, func(output string) (driver.Device, error) {
			if output == "" {
				return nil, errors.New("no output file")
			}
			return NewDevice(output, enc), nil
		})
	}
}

// Device draws pages into an image. Finished pages are written to a file by
// its encoder, or only kept in memory if it has none.
type Device struct {
	output string
	encode Encoder

	page   *raster
	number int
}

var _ driver.Device = (*Device)(nil)

// NewDevice creates a device writing pages to output with encode. A nil
// encode keeps pages in memory; see LastPage.
func NewDevice(output string, encode Encoder) *Device {
	return &Device{output: output, encode: encode}
}

// BeginPage implements driver.Device.
func (d *Device) BeginPage(p driver.Page) error {
	if p.Width <= 0 || p.Height <= 0 {
		return errors.Errorf("invalid page size %dx%d", p.Width, p.Height)
	}

	d.page = newRaster(p.Width, p.Height, p.Background)
	d.number = p.Number
	return nil
}

// Line implements driver.Device.
func (d *Device) Line(x1, y1, x2, y2 float64, c color.Color, width float64) {
	if d.page != nil {
		d.page.line(x1, y1, x2, y2, c, width)
	}
}

// Text implements driver.Device.
func (d *Device) Text(x, y float64, c color.Color, s string) {
	if d.page != nil {
		d.page.text(x, y, c, s)
	}
}

// Image returns the page being drawn, or nil outside of a page.
func (d *Device) Image() *image.RGBA {
	if d.page == nil {
		return nil
	}
	return d.page.img
}

// EndPage implements driver.Device. It writes the page to its file, or
// stores it for LastPage.
func (d *Device) EndPage() error {
	if d.page == nil {
		return nil
	}

	img := d.page.img
	d.page = nil

	if d.encode == nil {
		storePage(d.output, img)
		return nil
	}

	path := driver.PagePath(d.output, d.number)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create page file")
	}
	defer f.Close()

	if err := d.encode(f, img); err != nil {
		return errors.Wrapf(err, "failed to encode %q", path)
	}

	return errors.Wrap(f.Close(), "failed to close page file")
}

// Close implements driver.Device.
func (d *Device) Close() error {
	d.page = nil
	return nil
}

var (
	memoryMu sync.Mutex
	memory   = map[string]*image.RGBA{}
)

func storePage(output string, img *image.RGBA) {
	memoryMu.Lock()
	defer memoryMu.Unlock()
	memory[output] = img
}

// LastPage returns the last page finished by a memory device with the given
// output name.
func LastPage(output string) (*image.RGBA, bool) {
	memoryMu.Lock()
	defer memoryMu.Unlock()

	img, ok := memory[output]
	return img, ok
}

// ForgetPage drops the page stored under output.
func ForgetPage(output string) {
	memoryMu.Lock()
	defer memoryMu.Unlock()
	delete(memory, output)
}
