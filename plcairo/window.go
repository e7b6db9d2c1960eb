package plcairo

import (
	"sync"

	"github.com/diamondburned/plstream/driver"
	"github.com/pkg/errors"
)

// WindowName is the device name for surfaces attached to a GUI. The output
// given to the device is the key passed to AttachWindow.
const WindowName = "cairo-window"

var (
	windowsMu sync.Mutex
	windows   = map[string]*Device{}
)

func init() {
	driver.Register(WindowName, func(key string) (driver.Device, error) {
		windowsMu.Lock()
		defer windowsMu.Unlock()

		d, ok := windows[key]
		if !ok {
			return nil, errors.Errorf("no window attached as %q", key)
		}
		return d, nil
	})
}

// AttachWindow creates a device without an output file and makes it
// available as the WindowName device with output key. A stream initialized
// that way draws onto the returned device, which a widget then paints.
func AttachWindow(key string) *Device {
	d := NewDevice("")

	windowsMu.Lock()
	windows[key] = d
	windowsMu.Unlock()

	return d
}

// DetachWindow forgets the device attached as key.
func DetachWindow(key string) {
	windowsMu.Lock()
	delete(windows, key)
	windowsMu.Unlock()
}
