package engine

import "image/color"

// Rect is an axis-aligned rectangle.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (r Rect) dx() float64 { return r.XMax - r.XMin }
func (r Rect) dy() float64 { return r.YMax - r.YMin }

// Op is a plot buffer opcode.
type Op uint8

const (
	OpEnv Op = iota + 1
	OpColor
	OpWidth
	OpLine
	OpLabel
)

// Command is one recorded drawing call. Args are never modified once
// recorded, so buffers may share them.
type Command struct {
	Op   Op
	Args []float64
	Text []string
}

// State holds the parameters of a stream that CopyStreamState transfers.
type State struct {
	ColorMap [16]color.RGBA // colour map 0; entry 0 is the background
	Color    int
	Width    float64

	Window   Rect // world coordinates
	Viewport Rect // normalized device coordinates, 0 to 1

	// Device is the physical pixel extent the viewport maps into. Together
	// with the page size it makes up the device coordinates.
	Device     Rect
	PageWidth  int
	PageHeight int

	Buffered bool
	Buffer   []Command
}

// Default page size in pixels.
const (
	DefaultPageWidth  = 800
	DefaultPageHeight = 600
)

// defaultColorMap is PLplot's colour map 0.
var defaultColorMap = [16]color.RGBA{
	{0, 0, 0, 255},       // black
	{255, 0, 0, 255},     // red
	{255, 255, 0, 255},   // yellow
	{0, 255, 0, 255},     // green
	{127, 255, 212, 255}, // aquamarine
	{255, 192, 203, 255}, // pink
	{245, 222, 179, 255}, // wheat
	{190, 190, 190, 255}, // grey
	{165, 42, 42, 255},   // brown
	{0, 0, 255, 255},     // blue
	{138, 43, 226, 255},  // blue violet
	{0, 255, 255, 255},   // cyan
	{64, 224, 208, 255},  // turquoise
	{255, 0, 255, 255},   // magenta
	{250, 128, 114, 255}, // salmon
	{255, 255, 255, 255}, // white
}

// NewState returns the state of a freshly created stream.
func NewState() State {
	st := State{
		ColorMap: defaultColorMap,
		Color:    1,
		Width:    1,
		Window:   Rect{0, 1, 0, 1},
		Viewport: Rect{0.1, 0.9, 0.1, 0.9},
	}
	st.setPage(DefaultPageWidth, DefaultPageHeight)
	return st
}

func (st *State) setPage(width, height int) {
	st.PageWidth = width
	st.PageHeight = height
	st.Device = Rect{0, float64(width), 0, float64(height)}
}

// pen returns the current pen colour.
func (st *State) pen() color.RGBA {
	return st.ColorMap[st.Color]
}

// copyFrom copies the parameters of src. The plot buffer is cloned; device
// coordinates and page size are kept if noDeviceCoords is set.
func (st *State) copyFrom(src *State, noDeviceCoords bool) {
	st.ColorMap = src.ColorMap
	st.Color = src.Color
	st.Width = src.Width
	st.Window = src.Window
	st.Viewport = src.Viewport
	st.Buffered = src.Buffered
	st.Buffer = append([]Command(nil), src.Buffer...)

	if !noDeviceCoords {
		st.Device = src.Device
		st.PageWidth = src.PageWidth
		st.PageHeight = src.PageHeight
	}
}
