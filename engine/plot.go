package engine

import (
	"image/color"
	"log/slog"

	"github.com/diamondburned/plstream"
	"github.com/diamondburned/plstream/driver"
	"github.com/diamondburned/plstream/internal/metrics"
	"github.com/pkg/errors"
)

// charWidth is the approximate glyph advance in pixels, used to centre
// labels.
const charWidth = 7

// labelGap is the distance in pixels between the viewport and its labels.
const labelGap = 24

// SetDevice selects the device and output file used by Init.
func (e *Engine) SetDevice(name, output string) {
	if st := e.cur(); st != nil {
		st.device = name
		st.output = output
	}
}

// SetPage sets the page size and resets the device coordinates to it.
func (e *Engine) SetPage(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if st := e.cur(); st != nil {
		st.state.setPage(width, height)
	}
}

// SetColorMap sets an entry of colour map 0. Out of range entries and nil
// colours are ignored.
func (e *Engine) SetColorMap(index int, c color.Color) {
	st := e.cur()
	if st == nil || c == nil || index < 0 || index >= len(st.state.ColorMap) {
		return
	}
	st.state.ColorMap[index] = color.RGBAModel.Convert(c).(color.RGBA)
}

// SetBuffering turns the plot buffer on or off.
func (e *Engine) SetBuffering(on bool) {
	if st := e.cur(); st != nil {
		st.state.Buffered = on
	}
}

// Init opens the selected device. Calling it again is a no-op.
func (e *Engine) Init() error {
	st := e.cur()
	if st == nil {
		return ErrNoStream
	}
	if st.dev != nil {
		return nil
	}
	if st.device == "" {
		return ErrNoDevice
	}

	dev, err := driver.Open(st.device, st.output)
	if err != nil {
		metrics.DeviceErrors.WithLabelValues(st.device).Inc()
		return err
	}

	st.dev = dev
	return nil
}

// BeginPage starts a new page, finishing the previous one, and clears the
// plot buffer. A buffered stream records its pen first so that a replay draws
// with the colours the page started with.
func (e *Engine) BeginPage() {
	st := e.cur()
	if st == nil || st.dev == nil {
		return
	}

	if err := st.beginPage(); err != nil {
		st.logDeviceError("failed to begin page", err)
	}
}

// beginPage does the work of BeginPage. Only the device's own BeginPage
// error is returned; failing to finish the previous page is logged.
func (st *stream) beginPage() error {
	if err := st.endPage(); err != nil {
		st.logDeviceError("failed to end page", err)
	}

	st.pages++
	st.state.Buffer = nil
	if st.state.Buffered {
		st.state.Buffer = []Command{
			{Op: OpColor, Args: []float64{float64(st.state.Color)}},
			{Op: OpWidth, Args: []float64{st.state.Width}},
		}
	}

	err := st.dev.BeginPage(driver.Page{
		Number:     st.pages,
		Width:      st.state.PageWidth,
		Height:     st.state.PageHeight,
		Background: st.state.ColorMap[0],
	})
	if err != nil {
		return errors.Wrapf(err, "failed to begin page %d", st.pages)
	}

	st.inPage = true
	return nil
}

// EndPage finishes the current page.
func (e *Engine) EndPage() error {
	st := e.cur()
	if st == nil {
		return ErrNoStream
	}
	return st.endPage()
}

func (st *stream) endPage() error {
	if !st.inPage {
		return nil
	}
	st.inPage = false

	if err := st.dev.EndPage(); err != nil {
		metrics.DeviceErrors.WithLabelValues(st.device).Inc()
		return errors.Wrapf(err, "failed to write page %d", st.pages)
	}

	metrics.PagesWritten.WithLabelValues(st.device).Inc()
	plstream.Logger().Info("page written",
		slog.Int("stream_id", st.id),
		slog.String("device", st.device),
		slog.String("output", driver.PagePath(st.output, st.pages)),
	)
	return nil
}

// Env sets the world window and draws the viewport box.
func (e *Engine) Env(xmin, xmax, ymin, ymax float64) {
	if st := e.cur(); st != nil {
		st.exec(Command{Op: OpEnv, Args: []float64{xmin, xmax, ymin, ymax}})
	}
}

// Color selects an entry of colour map 0 as the pen colour.
func (e *Engine) Color(index int) {
	if st := e.cur(); st != nil {
		st.exec(Command{Op: OpColor, Args: []float64{float64(index)}})
	}
}

// Width sets the pen width in pixels.
func (e *Engine) Width(width float64) {
	if st := e.cur(); st != nil {
		st.exec(Command{Op: OpWidth, Args: []float64{width}})
	}
}

// Line draws a polyline. The coordinates are copied.
func (e *Engine) Line(xs, ys []float64) {
	st := e.cur()
	if st == nil {
		return
	}

	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}

	args := make([]float64, 0, 2*n)
	args = append(args, xs[:n]...)
	args = append(args, ys[:n]...)

	st.exec(Command{Op: OpLine, Args: args})
}

// Label writes the axis labels and the title around the viewport.
func (e *Engine) Label(x, y, title string) {
	if st := e.cur(); st != nil {
		st.exec(Command{Op: OpLabel, Text: []string{x, y, title}})
	}
}

// Replay starts a new page on the current stream and executes its plot
// buffer there. The buffer itself is left untouched. Nothing is drawn if the
// page cannot be started.
func (e *Engine) Replay() error {
	st := e.cur()
	if st == nil {
		return ErrNoStream
	}
	if st.dev == nil {
		return ErrNotInitialized
	}

	buf := st.state.Buffer
	err := st.beginPage()
	st.state.Buffer = buf
	if err != nil {
		metrics.DeviceErrors.WithLabelValues(st.device).Inc()
		return err
	}

	st.replaying = true
	defer func() { st.replaying = false }()

	for _, cmd := range buf {
		st.exec(cmd)
	}
	return nil
}

// exec applies cmd to the state, records it and draws it.
func (st *stream) exec(cmd Command) {
	if st.state.Buffered && !st.replaying {
		st.state.Buffer = append(st.state.Buffer, cmd)
	}

	switch cmd.Op {
	case OpEnv:
		st.state.Window = Rect{cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3]}
		st.drawBox()

	case OpColor:
		i := int(cmd.Args[0])
		if i >= 0 && i < len(st.state.ColorMap) {
			st.state.Color = i
		}

	case OpWidth:
		if w := cmd.Args[0]; w > 0 {
			st.state.Width = w
		}

	case OpLine:
		n := len(cmd.Args) / 2
		st.drawLine(cmd.Args[:n], cmd.Args[n:])

	case OpLabel:
		st.drawLabels(cmd.Text[0], cmd.Text[1], cmd.Text[2])
	}
}

func (st *stream) drawing() bool {
	return st.inPage && st.dev != nil
}

func (st *stream) drawLine(xs, ys []float64) {
	if !st.drawing() || len(xs) < 2 {
		return
	}

	t := newTransform(&st.state)
	pen := st.state.pen()

	x0, y0 := t.apply(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		x1, y1 := t.apply(xs[i], ys[i])
		st.dev.Line(x0, y0, x1, y1, pen, st.state.Width)
		x0, y0 = x1, y1
	}
}

func (st *stream) drawBox() {
	if !st.drawing() {
		return
	}

	l, t, r, b := viewport(&st.state)
	pen := st.state.pen()
	w := st.state.Width

	st.dev.Line(l, t, r, t, pen, w)
	st.dev.Line(r, t, r, b, pen, w)
	st.dev.Line(r, b, l, b, pen, w)
	st.dev.Line(l, b, l, t, pen, w)
}

func (st *stream) drawLabels(x, y, title string) {
	if !st.drawing() {
		return
	}

	l, t, r, b := viewport(&st.state)
	pen := st.state.pen()
	mid := (l + r) / 2

	if x != "" {
		st.dev.Text(mid-centre(x), b+labelGap, pen, x)
	}
	if title != "" {
		st.dev.Text(mid-centre(title), t-labelGap/2, pen, title)
	}
	if y != "" {
		st.dev.Text(l-labelGap-float64(charWidth*len(y)), (t+b)/2, pen, y)
	}
}

func centre(s string) float64 {
	return float64(charWidth*len(s)) / 2
}
