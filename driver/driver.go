package driver

import (
	"image/color"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ErrUnknown is returned by Open for a device name nobody registered.
var ErrUnknown = errors.New("driver: unknown device")

// Page describes a page about to be drawn.
type Page struct {
	Number     int // 1-based
	Width      int // pixels
	Height     int // pixels
	Background color.Color
}

// Device is an output device. Coordinates are in pixels with the origin at
// the top-left corner.
type Device interface {
	BeginPage(p Page) error
	Line(x1, y1, x2, y2 float64, c color.Color, width float64)
	Text(x, y float64, c color.Color, s string)
	// EndPage finishes the page; file devices write it out here.
	EndPage() error
	Close() error
}

// Factory creates a device writing to output.
type Factory func(output string) (Device, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register registers a device factory under name, replacing any earlier one.
// This is typically called from init functions in device packages.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a device. This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of the registered devices.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates a device by name.
func Open(name, output string) (Device, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrUnknown, "%q", name)
	}

	d, err := factory(output)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open device %q", name)
	}
	return d, nil
}

// PagePath returns the file name for a page. A %d verb in output is replaced
// by the page number; otherwise every page overwrites the same file.
func PagePath(output string, page int) string {
	if !strings.Contains(output, "%d") {
		return output
	}
	return strings.Replace(output, "%d", strconv.Itoa(page), 1)
}
