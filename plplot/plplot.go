//go:build cgo && plplot

package plplot

/*
#cgo pkg-config: plplot
#include <stdlib.h>
#include <plplot.h>
*/
import "C"

import (
	"image/color"
	"unsafe"

	"github.com/diamondburned/plstream"
	"github.com/pkg/errors"
)

func init() {
	plstream.Register(plstream.LibraryPLplot, Library{})
}

// Library is the native PLplot library. It has no state of its own; the
// stream table lives in PLplot.
type Library struct{}

var _ plstream.Plotter = Library{}

// CreateStream implements plstream.Library. It creates a stream with
// plmkstrm and returns its number, or -1.
func (Library) CreateStream() int {
	var id C.PLINT = -1
	C.c_plmkstrm(&id)
	return int(id)
}

// SetCurrentStream implements plstream.Library.
func (Library) SetCurrentStream(handle int) {
	C.c_plsstrm(C.PLINT(handle))
}

// EndCurrentStream implements plstream.Library.
func (Library) EndCurrentStream() {
	C.c_plend1()
}

// CopyStreamState implements plstream.Library.
func (Library) CopyStreamState(src int, noDeviceCoords bool) {
	C.c_plcpstrm(C.PLINT(src), cbool(noDeviceCoords))
}

// SetDevice implements plstream.Plotter.
func (Library) SetDevice(name, output string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.c_plsdev(cname)

	if output != "" {
		coutput := C.CString(output)
		defer C.free(unsafe.Pointer(coutput))
		C.c_plsfnam(coutput)
	}
}

// SetPage implements plstream.Plotter. The resolution is left to the device.
func (Library) SetPage(width, height int) {
	C.c_plspage(0, 0, C.PLINT(width), C.PLINT(height), 0, 0)
}

// SetColorMap implements plstream.Plotter. A nil colour is ignored.
func (Library) SetColorMap(index int, c color.Color) {
	if c == nil {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	C.c_plscol0(C.PLINT(index), C.PLINT(rgba.R), C.PLINT(rgba.G), C.PLINT(rgba.B))
}

// SetBuffering implements plstream.Plotter. PLplot drivers keep their own
// plot buffer, so this is a no-op.
func (Library) SetBuffering(bool) {}

// Init implements plstream.Plotter. PLplot aborts on most initialization
// errors itself; the only one detected here is a stream left without a
// device.
func (Library) Init() error {
	C.c_plinit()

	var level C.PLINT
	C.c_plglevel(&level)
	if level < 1 {
		return errors.New("plplot: plinit did not initialize the stream")
	}
	return nil
}

// BeginPage implements plstream.Plotter.
func (Library) BeginPage() { C.c_plbop() }

// EndPage implements plstream.Plotter.
func (Library) EndPage() error {
	C.c_pleop()
	return nil
}

// Env implements plstream.Plotter.
func (Library) Env(xmin, xmax, ymin, ymax float64) {
	C.c_plenv(C.PLFLT(xmin), C.PLFLT(xmax), C.PLFLT(ymin), C.PLFLT(ymax), 0, 0)
}

// Color implements plstream.Plotter.
func (Library) Color(index int) { C.c_plcol0(C.PLINT(index)) }

// Width implements plstream.Plotter.
func (Library) Width(width float64) { C.c_plwidth(C.PLFLT(width)) }

// Line implements plstream.Plotter.
func (Library) Line(xs, ys []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return
	}

	// PLFLT is double in every PLplot build this package supports.
	C.c_plline(C.PLINT(n),
		(*C.PLFLT)(unsafe.Pointer(&xs[0])),
		(*C.PLFLT)(unsafe.Pointer(&ys[0])),
	)
}

// Label implements plstream.Plotter.
func (Library) Label(x, y, title string) {
	cx := C.CString(x)
	cy := C.CString(y)
	ct := C.CString(title)
	defer C.free(unsafe.Pointer(cx))
	defer C.free(unsafe.Pointer(cy))
	defer C.free(unsafe.Pointer(ct))

	C.c_pllab(cx, cy, ct)
}

// Replay implements plstream.Plotter.
func (Library) Replay() error {
	C.c_plreplot()
	return nil
}

func cbool(b bool) C.PLBOOL {
	if b {
		return 1
	}
	return 0
}
