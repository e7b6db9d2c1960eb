package scope

import (
	"image/color"

	"github.com/diamondburned/plstream/plcairo"
	"github.com/noriah/catnip/dsp"
	"github.com/noriah/catnip/dsp/window"
)

// Config is the scope config.
type Config struct {
	// Backend is the input backend name.
	Backend string
	// Device is the input device name.
	Device string

	WindowFn     window.Function // default CosSum, a0 = 0.50
	Scaling      ScalingConfig
	SampleRate   float64
	SmoothFactor float64
	SampleSize   int
	FrameRate    float64
	MinimumClamp float64 // pixels before a bar is visible
	SpectrumType dsp.SpectrumType

	PlotOptions

	Monophonic bool
	Symmetry   Symmetry
}

// Symmetry is the style to draw the bars symmetrically.
type Symmetry uint8

const (
	// Vertical draws the second channel mirrored below the first.
	Vertical Symmetry = iota
	// Horizontal draws the second channel mirrored to the right of the
	// first.
	Horizontal
)

// WrapExternalWindowFn wraps external (mostly gonum/dsp/window) functions to
// be compatible with catnip's usage. The given function must modify the slice
// in place, which most gonum functions do.
func WrapExternalWindowFn(fn func([]float64) []float64) window.Function {
	return func(buf []float64) { fn(buf) }
}

// PlotOptions controls how the spectrum is plotted.
type PlotOptions struct {
	Cairo plcairo.Options

	Colors     Colors
	BarWidth   float64 // pixels
	SpaceWidth float64 // pixels on each side of a bar

	// Title is drawn above the plot if not empty.
	Title string
}

// Colors is the colour settings for the plot.
type Colors struct {
	Foreground color.Color // red if nil
	Background color.Color // black if nil
}

// ScalingConfig is the scaling settings for the visualizer.
type ScalingConfig struct {
	StaticScale    float64 // 0 for dynamic scale
	SlowWindow     float64
	FastWindow     float64
	DumpPercent    float64
	ResetDeviation float64
}

// NewConfig returns the default config.
func NewConfig() Config {
	return Config{
		Backend: "portaudio",
		Device:  "",

		// Default to CosSum with WinVar = 0.50.
		WindowFn: func(buf []float64) { window.CosSum(buf, 0.50) },

		SampleRate:   48000,
		SmoothFactor: 65.69,
		SampleSize:   48000 / 30, // 30fps
		FrameRate:    30,
		Monophonic:   false,
		MinimumClamp: 1,
		SpectrumType: dsp.TypeDefault,

		PlotOptions: PlotOptions{
			Cairo:      plcairo.DefaultOptions(),
			BarWidth:   4,
			SpaceWidth: 1,
		},

		Scaling: ScalingConfig{
			SlowWindow:     5,
			FastWindow:     5 * 0.2,
			DumpPercent:    0.75,
			ResetDeviation: 1.0,
		},
	}
}
