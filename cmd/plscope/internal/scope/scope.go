package scope

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/diamondburned/plstream"
	"github.com/diamondburned/plstream/plcairo"
	"github.com/gotk3/gotk3/cairo"
	"github.com/noriah/catnip/dsp"
	"github.com/noriah/catnip/fft"
	"github.com/noriah/catnip/input"
	"github.com/pkg/errors"

	catniputil "github.com/noriah/catnip/util"
)

// plotFraction is the share of the page inside the plot box.
const plotFraction = 0.8

// DrawQueuer is a custom widget interface that allows draw queueing.
type DrawQueuer interface {
	QueueDraw()
}

// AllocatedSizeGetter is any widget that can be obtained dimensions of. This
// is used for the Draw method.
type AllocatedSizeGetter interface {
	GetAllocatedWidth() int
	GetAllocatedHeight() int
}

var windowKeys uint64

// Scope reads an audio input and plots its spectrum through a stream.
type Scope struct {
	drawQ DrawQueuer

	cfg     Config
	ctx     context.Context
	cancel  context.CancelFunc
	started uint32

	// total bar + space width
	binWidth float64
	// channels; 1 if monophonic
	channels int

	backend  input.Backend
	device   input.Device
	inputCfg input.SessionConfig

	fftPlans []*fft.Plan
	fftBufs  [][]complex128
	barBufs  [][]float64
	spectrum dsp.Spectrum

	slowWindow *catniputil.MovingWindow
	fastWindow *catniputil.MovingWindow

	width    int
	height   int
	scale    float64
	barCount int

	stream *plstream.Stream
	window *plcairo.Device // nil unless drawn into a widget
	key    string

	shared struct {
		sync.Mutex
		paused bool
		reproc bool

		// Input buffers.
		readBuf  [][]float64
		writeBuf [][]float64
	}
}

// New creates a scope that draws onto a cairo surface for a widget. The given
// drawQueuer will be called every redrawn frame.
func New(drawQ DrawQueuer, cfg Config) (*Scope, error) {
	key := fmt.Sprintf("plscope-%d", atomic.AddUint64(&windowKeys, 1))

	window := plcairo.AttachWindow(key)
	window.SetOptions(cfg.Cairo)

	s, err := newScope(drawQ, cfg, plcairo.WindowName, key)
	if err != nil {
		plcairo.DetachWindow(key)
		return nil, err
	}

	s.window = window
	s.key = key
	return s, nil
}

// newScope creates a scope plotting into a stream on the given device.
func newScope(drawQ DrawQueuer, cfg Config, device, output string) (*Scope, error) {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if cfg.SampleSize <= 0 {
		return nil, errors.New("scope: sample size must be positive")
	}

	streamCfg := plstream.NewConfig()
	streamCfg.Library = plstream.LibraryBuiltin
	streamCfg.Device = device
	streamCfg.Output = output
	streamCfg.LineWidth = cfg.BarWidth
	if cfg.Colors.Foreground != nil {
		streamCfg.Colors.Foreground = cfg.Colors.Foreground
	}
	if cfg.Colors.Background != nil {
		streamCfg.Colors.Background = cfg.Colors.Background
	}

	stream, err := plstream.Open(streamCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open plot stream")
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Scope{
		drawQ:  drawQ,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		stream: stream,

		channels: 2,
		binWidth: cfg.BarWidth + (cfg.SpaceWidth * 2),
	}

	if cfg.Monophonic {
		s.channels = 1
	}

	s.allocate()
	return s, nil
}

// SetPaused will silent all inputs if true.
func (s *Scope) SetPaused(paused bool) {
	s.shared.Lock()
	s.shared.paused = paused
	s.shared.Unlock()
}

// SetBackend overrides the given Backend in the config.
func (s *Scope) SetBackend(backend input.Backend) {
	s.backend = backend
}

// SetDevice overrides the given Device in the config.
func (s *Scope) SetDevice(device input.Device) {
	s.device = device
}

// Stream returns the stream the scope plots into. Its plot buffer holds the
// last frame.
func (s *Scope) Stream() *plstream.Stream {
	return s.stream
}

// Stop signals the input loop to stop and closes the plot stream. It does not
// block.
func (s *Scope) Stop() {
	s.cancel()
	s.stream.Close()

	if s.key != "" {
		plcairo.DetachWindow(s.key)
	}
}

// Draw is bound to the draw signal. It plots the current spectrum and paints
// it onto cr.
func (s *Scope) Draw(w AllocatedSizeGetter, cr *cairo.Context) {
	if s.ctx.Err() != nil {
		return
	}

	if err := s.Render(w.GetAllocatedWidth(), w.GetAllocatedHeight()); err != nil {
		plstream.Logger().Warn("failed to plot spectrum", slog.String("error", err.Error()))
		return
	}

	if s.window != nil {
		s.window.Paint(cr)
	}
}

// Render plots the current spectrum as one page of the given size.
func (s *Scope) Render(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}

	resized := width != s.width || height != s.height
	if resized {
		s.width = width
		s.height = height
		s.barCount = s.spectrum.Recalculate(s.bars(float64(width) * plotFraction))
		if max := len(s.barBufs[0]); s.barCount > max {
			s.barCount = max
		}
	}

	return s.stream.Do(func(p plstream.Plotter) error {
		if resized {
			p.SetPage(width, height)
		}

		p.BeginPage()
		s.plot(p, float64(height)*plotFraction)
		return p.EndPage()
	})
}

func (s *Scope) plot(p plstream.Plotter, plotHeight float64) {
	var (
		n     = float64(s.barCount)
		clamp = s.cfg.MinimumClamp / plotHeight
		xs    = make([]float64, 2)
		ys    = make([]float64, 2)
	)

	bar := func(x, from, to float64) {
		xs[0], xs[1] = x, x
		ys[0], ys[1] = from, to
		p.Line(xs, ys)
	}

	switch s.cfg.Symmetry {
	case Vertical:
		p.Env(0, n, -1, 1)

		lBins := s.barBufs[0]
		rBins := s.barBufs[1%len(s.barBufs)]

		for i := 0; i < s.barCount; i++ {
			l := barHeight(lBins[i], s.scale, clamp)
			r := barHeight(rBins[i], s.scale, clamp)
			bar(float64(i)+0.5, -r, l)
		}

	case Horizontal:
		p.Env(0, n*float64(len(s.barBufs)), 0, 1)

		x := 0.5
		for ch, bins := range s.barBufs {
			for i := 0; i < s.barCount; i++ {
				ix := i
				// Mirror every other channel.
				if ch%2 == 1 {
					ix = s.barCount - 1 - i
				}

				bar(x, 0, barHeight(bins[ix], s.scale, clamp))
				x++
			}
		}
	}

	if s.cfg.Title != "" {
		p.Label("", "", s.cfg.Title)
	}
}

// SavePlot writes the last plotted frame through a new stream on the given
// device.
func (s *Scope) SavePlot(device, output string) error {
	cfg := plstream.NewConfig()
	cfg.Library = plstream.LibraryBuiltin
	cfg.Device = device
	cfg.Output = output
	cfg.Buffered = false

	file, err := plstream.Open(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to open output stream")
	}
	defer file.Close()

	if err := file.CopyState(s.stream, false); err != nil {
		return errors.Wrap(err, "failed to copy plot")
	}

	if err := file.Replay(); err != nil {
		return errors.Wrap(err, "failed to replay plot")
	}

	return file.EndPage()
}

// barHeight scales value into the 0 to 1 range of the plot. Bars up to clamp,
// also a fraction of the plot height, are dropped to 0.
func barHeight(value, scale, clamp float64) float64 {
	if scale <= 0 || clamp >= 1 || math.IsNaN(value) || value <= 0 {
		return 0
	}

	bar := math.Min(value/scale, 1)
	if bar <= clamp {
		return 0
	}

	// Rescale the lost value.
	return (bar - clamp) / (1 - clamp)
}

// bars calculates the number of bars that fit in width.
func (s *Scope) bars(width float64) int {
	if s.binWidth <= 0 {
		return 0
	}

	var bars = width / s.binWidth

	if s.cfg.Symmetry == Horizontal {
		bars /= float64(s.channels)
	}

	return int(math.Ceil(bars))
}
