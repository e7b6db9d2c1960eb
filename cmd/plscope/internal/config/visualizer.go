package config

import (
	"math"

	"github.com/diamondburned/handy"
	"github.com/diamondburned/plstream/cmd/plscope/internal/scope"
	"github.com/noriah/catnip/dsp"
	"gonum.org/v1/gonum/dsp/window"

	catnipwindow "github.com/noriah/catnip/dsp/window"
)

// Visualizer is the signal processing setup.
type Visualizer struct {
	SampleRate float64
	FrameRate  float64

	WindowFn     WindowFn
	SmoothFactor float64
	Distribution Distribution

	ScaleSlowWindow     float64
	ScaleFastWindow     float64
	ScaleDumpPercent    float64
	ScaleResetDeviation float64
}

// NewVisualizer returns the default visualizer settings.
func NewVisualizer() Visualizer {
	return Visualizer{
		SampleRate: 48000,
		FrameRate:  60,

		SmoothFactor: 65.69,
		WindowFn:     BlackmanHarris,
		Distribution: DistributeLog,

		ScaleSlowWindow:     5,
		ScaleFastWindow:     4,
		ScaleDumpPercent:    0.75,
		ScaleResetDeviation: 1.0,
	}
}

// SampleSize is the number of samples read per frame.
func (v Visualizer) SampleSize() int {
	return int(math.Round(v.SampleRate / v.FrameRate))
}

// Page creates the preferences page for the visualizer.
func (v *Visualizer) Page(apply func()) *handy.PreferencesPage {
	samplingGroup := newGroup("Sampling",
		newRow("Sample Rate (Hz)", "The sample rate to record; higher is more accurate.",
			newSpin(&v.SampleRate, 4000, 192000, 4000, 0, apply)),
		newRow("Frame Rate (fps)", "The frame rate to sample; lower is more accurate.",
			newSpin(&v.FrameRate, 5, 240, 5, 0, apply)),
	)

	windowFn := string(v.WindowFn)
	windowNames := make([]string, len(windowFns))
	for i, fn := range windowFns {
		windowNames[i] = string(fn)
	}

	distribution := string(v.Distribution)

	signalProcGroup := newGroup("Signal Processing",
		newRow("Window Function", "The window function to use for signal processing.",
			newCombo(&windowFn, windowNames, func() {
				v.WindowFn = WindowFn(windowFn)
				apply()
			})),
		newRow("Distribution", "The frequency distribution algorithm to use.",
			newCombo(&distribution, []string{string(DistributeLog), string(DistributeEqual)}, func() {
				v.Distribution = Distribution(distribution)
				apply()
			})),
		newRow("Smooth Factor", "The variable for smoothing; higher means smoother.",
			newSpin(&v.SmoothFactor, 0, 100, 2, 2, apply)),
	)

	scalingGroup := newGroup("Scaling",
		newRow("Slow Window (s)", "The long window the scale follows.",
			newSpin(&v.ScaleSlowWindow, 1, 30, 1, 1, apply)),
		newRow("Fast Window (s)", "The short window that resets the scale on sudden changes.",
			newSpin(&v.ScaleFastWindow, 0.1, 30, 0.1, 1, apply)),
	)

	return newPage("Visualizer", "preferences-desktop-display-symbolic",
		samplingGroup, signalProcGroup, scalingGroup)
}

// Distribution is the frequency distribution of the bars.
type Distribution string

const (
	DistributeLog   Distribution = "Logarithmic"
	DistributeEqual Distribution = "Equal"
)

// AsSpectrumType converts dt to catnip's spectrum type.
func (dt Distribution) AsSpectrumType() dsp.SpectrumType {
	switch dt {
	case DistributeLog:
		return dsp.TypeLog
	case DistributeEqual:
		return dsp.TypeEqual
	default:
		return dsp.TypeDefault
	}
}

// WindowFn names a window function.
type WindowFn string

const (
	BartlettHann    WindowFn = "Bartlett–Hann"
	Blackman        WindowFn = "Blackman"
	BlackmanHarris  WindowFn = "Blackman–Harris"
	BlackmanNuttall WindowFn = "Blackman–Nuttall"
	FlatTop         WindowFn = "Flat Top"
	Hamming         WindowFn = "Hamming"
	Hann            WindowFn = "Hann"
	Lanczos         WindowFn = "Lanczos"
	Nuttall         WindowFn = "Nuttall"
	Rectangular     WindowFn = "Rectangular"
	Sine            WindowFn = "Sine"
	Triangular      WindowFn = "Triangular"
	CosineSum       WindowFn = "Cosine-Sum"
	PlanckTaper     WindowFn = "Planck–Taper"
)

var windowFns = []WindowFn{
	BartlettHann,
	Blackman,
	BlackmanHarris,
	BlackmanNuttall,
	FlatTop,
	Hamming,
	Hann,
	Lanczos,
	Nuttall,
	Rectangular,
	Sine,
	Triangular,
	CosineSum,
	PlanckTaper,
}

var gonumWindows = map[WindowFn]func([]float64) []float64{
	BartlettHann:    window.BartlettHann,
	Blackman:        window.Blackman,
	BlackmanHarris:  window.BlackmanHarris,
	BlackmanNuttall: window.BlackmanNuttall,
	FlatTop:         window.FlatTop,
	Hamming:         window.Hamming,
	Hann:            window.Hann,
	Lanczos:         window.Lanczos,
	Nuttall:         window.Nuttall,
	Rectangular:     window.Rectangular,
	Sine:            window.Sine,
	Triangular:      window.Triangular,
}

// AsFunction returns the window function. Unknown names fall back to
// Blackman.
func (wfn WindowFn) AsFunction() catnipwindow.Function {
	if fn, ok := gonumWindows[wfn]; ok {
		return scope.WrapExternalWindowFn(fn)
	}

	switch wfn {
	case CosineSum:
		return func(buf []float64) { catnipwindow.CosSum(buf, 0.5) }
	case PlanckTaper:
		return func(buf []float64) { catnipwindow.PlanckTaper(buf, 0.5) }
	default:
		return Blackman.AsFunction()
	}
}
