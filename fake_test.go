package plstream

import (
	"image/color"
	"sync"
	"sync/atomic"
)

type event struct {
	op     string
	handle int // target of set/end/copy, result of create
	src    int
	flag   bool
}

// fakeLibrary records every primitive call and counts calls that overlap,
// which can only happen if the library lock is not held.
type fakeLibrary struct {
	mu      sync.Mutex
	next    int
	fail    bool
	current int
	events  []event

	busy     int32
	overlaps int32
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{current: -1}
}

func (f *fakeLibrary) enter() {
	if atomic.AddInt32(&f.busy, 1) != 1 {
		atomic.AddInt32(&f.overlaps, 1)
	}
}

func (f *fakeLibrary) exit() { atomic.AddInt32(&f.busy, -1) }

func (f *fakeLibrary) record(ev event) {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
}

func (f *fakeLibrary) CreateStream() int {
	f.enter()
	defer f.exit()

	if f.fail {
		f.record(event{op: "create", handle: -1})
		return -1
	}
	h := f.next
	f.next++
	f.record(event{op: "create", handle: h})
	return h
}

func (f *fakeLibrary) SetCurrentStream(handle int) {
	f.enter()
	defer f.exit()

	f.current = handle
	f.record(event{op: "set", handle: handle})
}

func (f *fakeLibrary) EndCurrentStream() {
	f.enter()
	defer f.exit()

	f.record(event{op: "end", handle: f.current})
	f.current = -1
}

func (f *fakeLibrary) CopyStreamState(src int, noDeviceCoords bool) {
	f.enter()
	defer f.exit()

	f.record(event{op: "copy", handle: f.current, src: src, flag: noDeviceCoords})
}

func (f *fakeLibrary) snapshot() []event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]event(nil), f.events...)
}

func (f *fakeLibrary) count(op string) int {
	n := 0
	for _, ev := range f.snapshot() {
		if ev.op == op {
			n++
		}
	}
	return n
}

// without returns the events that are not of the given ops.
func without(events []event, ops ...string) []event {
	var out []event
outer:
	for _, ev := range events {
		for _, op := range ops {
			if ev.op == op {
				continue outer
			}
		}
		out = append(out, ev)
	}
	return out
}

// fakePlotter adds the plotting calls on top of fakeLibrary. They are
// recorded by name with the current stream as the handle.
type fakePlotter struct {
	*fakeLibrary
	initErr error
}

func newFakePlotter() *fakePlotter {
	return &fakePlotter{fakeLibrary: newFakeLibrary()}
}

func (f *fakePlotter) call(op string) { f.record(event{op: op, handle: f.current}) }

func (f *fakePlotter) SetDevice(name, output string)        { f.call("device") }
func (f *fakePlotter) SetPage(width, height int)            { f.call("page") }
func (f *fakePlotter) SetColorMap(index int, c color.Color) { f.call("colormap") }
func (f *fakePlotter) SetBuffering(on bool)                 { f.call("buffering") }
func (f *fakePlotter) BeginPage()                           { f.call("bop") }
func (f *fakePlotter) Env(xmin, xmax, ymin, ymax float64)   { f.call("env") }
func (f *fakePlotter) Color(index int)                      { f.call("color") }
func (f *fakePlotter) Width(width float64)                  { f.call("width") }
func (f *fakePlotter) Line(xs, ys []float64)                { f.call("line") }
func (f *fakePlotter) Label(x, y, title string)             { f.call("label") }

func (f *fakePlotter) Init() error {
	f.call("init")
	return f.initErr
}

func (f *fakePlotter) EndPage() error {
	f.call("eop")
	return nil
}

func (f *fakePlotter) Replay() error {
	f.call("replay")
	return nil
}
