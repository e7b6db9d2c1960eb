package engine

import (
	"image/color"
	"testing"

	"github.com/diamondburned/plstream"
	"github.com/diamondburned/plstream/driver"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	x1, y1, x2, y2 float64
	c              color.RGBA
	w              float64
}

type recDevice struct {
	output string
	pages  []driver.Page
	lines  []line
	texts  []string
	ended  int
	closed bool

	beginErr error
}

func (d *recDevice) BeginPage(p driver.Page) error {
	if d.beginErr != nil {
		return d.beginErr
	}
	d.pages = append(d.pages, p)
	return nil
}

func (d *recDevice) Line(x1, y1, x2, y2 float64, c color.Color, w float64) {
	d.lines = append(d.lines, line{x1, y1, x2, y2, color.RGBAModel.Convert(c).(color.RGBA), w})
}

func (d *recDevice) Text(x, y float64, c color.Color, s string) {
	d.texts = append(d.texts, s)
}

func (d *recDevice) EndPage() error {
	d.ended++
	return nil
}

func (d *recDevice) Close() error {
	d.closed = true
	return nil
}

// useRecorder registers the "rec" device and returns the devices it opens by
// output name.
func useRecorder(t *testing.T) map[string]*recDevice {
	t.Helper()

	devices := make(map[string]*recDevice)
	driver.Register("rec", func(output string) (driver.Device, error) {
		d := &recDevice{output: output}
		devices[output] = d
		return d, nil
	})
	t.Cleanup(func() { driver.Unregister("rec") })

	return devices
}

// open creates a stream on e drawing to a "rec" device and makes it current.
func open(t *testing.T, e *Engine, output string) int {
	t.Helper()

	h := e.CreateStream()
	require.GreaterOrEqual(t, h, 0)

	e.SetCurrentStream(h)
	e.SetDevice("rec", output)
	e.SetPage(100, 100)
	require.NoError(t, e.Init())
	return h
}

func TestCreateStreamSlots(t *testing.T) {
	e := New()

	assert.Equal(t, 0, e.CreateStream())
	assert.Equal(t, 1, e.CreateStream())
	assert.Equal(t, 2, e.CreateStream())

	e.SetCurrentStream(1)
	e.EndCurrentStream()
	assert.Equal(t, -1, e.Current())

	assert.Equal(t, 1, e.CreateStream(), "freed slots are reused lowest first")
}

func TestCreateStreamFull(t *testing.T) {
	e := New()
	for i := 0; i < MaxStreams; i++ {
		require.Equal(t, i, e.CreateStream())
	}
	assert.Equal(t, -1, e.CreateStream())
}

func TestEndCurrentStreamClosesDevice(t *testing.T) {
	devices := useRecorder(t)
	e := New()

	h := open(t, e, "a")
	e.BeginPage()
	e.EndCurrentStream()

	d := devices["a"]
	assert.Equal(t, 1, d.ended, "open page is finished")
	assert.True(t, d.closed)

	_, ok := e.State(h)
	assert.False(t, ok)
}

func TestCallsWithoutCurrentStream(t *testing.T) {
	e := New()
	e.CreateStream()

	// None of these may panic.
	e.Env(0, 1, 0, 1)
	e.Line([]float64{0, 1}, []float64{0, 1})
	e.CopyStreamState(0, false)
	e.EndCurrentStream()

	assert.True(t, errors.Is(e.Init(), ErrNoStream))
	assert.True(t, errors.Is(e.Replay(), ErrNoStream))
}

func TestInitErrors(t *testing.T) {
	e := New()
	e.SetCurrentStream(e.CreateStream())

	assert.True(t, errors.Is(e.Init(), ErrNoDevice))

	e.SetDevice("no-such-device", "out")
	assert.True(t, errors.Is(e.Init(), driver.ErrUnknown))
}

func TestTransform(t *testing.T) {
	devices := useRecorder(t)
	e := New()
	open(t, e, "a")

	e.BeginPage()
	e.Env(0, 10, 0, 10)
	e.Line([]float64{0, 10}, []float64{0, 10})

	d := devices["a"]
	require.Len(t, d.lines, 5, "4 box edges and 1 segment")

	seg := d.lines[4]
	assert.InDelta(t, 10, seg.x1, 1e-9)
	assert.InDelta(t, 90, seg.y1, 1e-9)
	assert.InDelta(t, 90, seg.x2, 1e-9)
	assert.InDelta(t, 10, seg.y2, 1e-9)
}

func TestDrawingOutsidePageIsDropped(t *testing.T) {
	devices := useRecorder(t)
	e := New()
	open(t, e, "a")

	e.Line([]float64{0, 1}, []float64{0, 1})
	assert.Empty(t, devices["a"].lines)

	require.NoError(t, e.EndPage(), "ending without a page is a no-op")
}

func TestBufferRecording(t *testing.T) {
	useRecorder(t)
	e := New()
	h := open(t, e, "a")

	e.Line([]float64{0, 1}, []float64{0, 1})
	st, _ := e.State(h)
	assert.Empty(t, st.Buffer, "nothing is recorded without buffering")

	e.SetBuffering(true)
	e.BeginPage()
	e.Color(3)
	e.Line([]float64{0, 1}, []float64{0, 1})

	st, _ = e.State(h)
	require.Len(t, st.Buffer, 4)
	assert.Equal(t, Command{Op: OpColor, Args: []float64{1}}, st.Buffer[0], "page starts with the pen")
	assert.Equal(t, Command{Op: OpWidth, Args: []float64{1}}, st.Buffer[1])
	assert.Equal(t, Command{Op: OpColor, Args: []float64{3}}, st.Buffer[2])
	assert.Equal(t, OpLine, st.Buffer[3].Op)
	assert.Equal(t, []float64{0, 1, 0, 1}, st.Buffer[3].Args)

	e.BeginPage()
	st, _ = e.State(h)
	assert.Equal(t, []Command{
		{Op: OpColor, Args: []float64{3}},
		{Op: OpWidth, Args: []float64{1}},
	}, st.Buffer, "a new page clears the buffer")
}

func TestCopyStreamState(t *testing.T) {
	useRecorder(t)
	e := New()

	src := open(t, e, "src")
	e.SetPage(300, 200)
	e.SetColorMap(0, color.White)
	e.SetBuffering(true)
	e.BeginPage()
	e.Color(9)
	e.Width(2)
	e.Env(-1, 1, -2, 2)

	dst := open(t, e, "dst")
	e.CopyStreamState(src, false)

	got, _ := e.State(dst)
	want, _ := e.State(src)
	assert.Equal(t, want, got)

	// The copied buffer must not alias the source's.
	e.SetCurrentStream(src)
	e.Line([]float64{0, 1}, []float64{0, 1})
	got, _ = e.State(dst)
	assert.Len(t, got.Buffer, 5)
}

func TestSetColorMapIgnoresNil(t *testing.T) {
	useRecorder(t)
	e := New()
	h := open(t, e, "a")

	e.SetColorMap(1, nil)
	e.SetColorMap(16, color.White)

	st, _ := e.State(h)
	assert.Equal(t, defaultColorMap, st.ColorMap)
}

func TestCopyStreamStateNoDeviceCoords(t *testing.T) {
	useRecorder(t)
	e := New()

	src := open(t, e, "src")
	e.SetPage(300, 200)
	e.Color(4)

	dst := open(t, e, "dst")
	e.SetPage(640, 480)
	e.CopyStreamState(src, true)

	got, _ := e.State(dst)
	assert.Equal(t, 4, got.Color)
	assert.Equal(t, 640, got.PageWidth)
	assert.Equal(t, 480, got.PageHeight)
	assert.Equal(t, Rect{0, 640, 0, 480}, got.Device)
}

func TestReplay(t *testing.T) {
	devices := useRecorder(t)
	e := New()

	src := open(t, e, "src")
	e.SetBuffering(true)
	e.BeginPage()
	e.Env(0, 10, 0, 10)
	e.Color(2)
	e.Line([]float64{0, 5, 10}, []float64{0, 10, 0})
	e.Label("x", "y", "title")
	require.NoError(t, e.EndPage())

	open(t, e, "dst")
	e.CopyStreamState(src, false)
	require.NoError(t, e.Replay())
	require.NoError(t, e.EndPage())

	assert.Equal(t, devices["src"].lines, devices["dst"].lines)
	assert.Equal(t, devices["src"].texts, devices["dst"].texts)
	assert.Equal(t, []string{"x", "title", "y"}, devices["dst"].texts)

	st, _ := e.State(e.Current())
	assert.Len(t, st.Buffer, 6, "replay must not record again")

	require.NoError(t, e.Replay())
	assert.Len(t, devices["dst"].pages, 2, "each replay starts a page")
	assert.Len(t, devices["dst"].lines, 2*len(devices["src"].lines))
}

func TestReplayBeginPageFails(t *testing.T) {
	devices := useRecorder(t)
	e := New()

	src := open(t, e, "src")
	e.SetBuffering(true)
	e.BeginPage()
	e.Env(0, 10, 0, 10)
	require.NoError(t, e.EndPage())

	open(t, e, "dst")
	e.CopyStreamState(src, false)

	errFull := errors.New("disk full")
	devices["dst"].beginErr = errFull

	err := e.Replay()
	assert.True(t, errors.Is(err, errFull))
	assert.Empty(t, devices["dst"].lines)

	require.NoError(t, e.EndPage())
	assert.Zero(t, devices["dst"].ended, "no page was started")

	st, _ := e.State(e.Current())
	assert.Len(t, st.Buffer, 3, "the buffer survives a failed replay")
}

func TestReplayBeforeInit(t *testing.T) {
	e := New()
	e.SetCurrentStream(e.CreateStream())
	assert.True(t, errors.Is(e.Replay(), ErrNotInitialized))
}

func TestStateInsideDo(t *testing.T) {
	s, err := plstream.NewWithLibrary(Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	id, err := s.ID()
	require.NoError(t, err)

	require.NoError(t, s.Color(5))

	err = s.Do(func(plstream.Plotter) error {
		require.Equal(t, id, Default().Current())

		st, ok := Default().State(id)
		require.True(t, ok)
		assert.Equal(t, 5, st.Color)
		return nil
	})
	require.NoError(t, err)
}

func TestRegisteredAsBuiltin(t *testing.T) {
	assert.Same(t, Default(), plstream.Lookup(plstream.LibraryBuiltin))
}
