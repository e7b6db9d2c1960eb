package plstream

import (
	"image/color"
	"sort"
	"sync"
)

// Library names known to Default.
const (
	// LibraryPLplot is the cgo binding to libplplot.
	LibraryPLplot = "plplot"
	// LibraryBuiltin is the in-process emulation in package engine.
	LibraryBuiltin = "builtin"
)

// Library is the set of native entry points a Stream is built on. The library
// keeps a single ambient "current stream"; every call other than
// CreateStream applies to it. Implementations need not be goroutine-safe:
// Stream serializes all calls through one process-wide lock.
type Library interface {
	// CreateStream allocates a new stream and returns its handle, or a
	// negative number on failure.
	CreateStream() int
	// SetCurrentStream makes handle the ambient current stream.
	SetCurrentStream(handle int)
	// EndCurrentStream tears down the current stream and releases its handle.
	EndCurrentStream()
	// CopyStreamState copies the state parameters of src into the current
	// stream. Device coordinates are left alone if noDeviceCoords is true.
	CopyStreamState(src int, noDeviceCoords bool)
}

// Plotter is a Library that also exposes the plotting calls needed to render
// and replay a plot. All of them target the current stream.
type Plotter interface {
	Library

	SetDevice(name, output string)
	SetPage(width, height int)
	SetColorMap(index int, c color.Color)
	SetBuffering(on bool)
	Init() error

	BeginPage()
	EndPage() error

	Env(xmin, xmax, ymin, ymax float64)
	Color(index int)
	Width(width float64)
	Line(xs, ys []float64)
	Label(x, y, title string)

	// Replay starts a new page on the current stream and redraws its plot
	// buffer onto it.
	Replay() error
}

var (
	registryMu sync.RWMutex
	libraries  = make(map[string]Library)
	// Priority order for Default; the native library wins when linked in.
	libraryPriority = []string{LibraryPLplot, LibraryBuiltin}
)

// Register makes a library available under the given name, replacing any
// library registered before under that name. It is typically called from an
// init function.
func Register(name string, lib Library) {
	registryMu.Lock()
	defer registryMu.Unlock()
	libraries[name] = lib
}

// Unregister removes a library from the registry. This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(libraries, name)
}

// Lookup returns the library registered under name, or nil.
func Lookup(name string) Library {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return libraries[name]
}

// Available returns the sorted names of all registered libraries.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(libraries))
	for name := range libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the preferred registered library, or nil if there is none.
func Default() Library {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range libraryPriority {
		if lib, ok := libraries[name]; ok {
			return lib
		}
	}

	// Fall back to the first one by name so the choice is stable.
	names := make([]string, 0, len(libraries))
	for name := range libraries {
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return libraries[names[0]]
}
