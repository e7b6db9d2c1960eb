package engine

import (
	"log/slog"

	"github.com/diamondburned/plstream"
	"github.com/diamondburned/plstream/driver"
	"github.com/diamondburned/plstream/internal/metrics"
	"github.com/pkg/errors"
)

// MaxStreams is the size of the stream table.
const MaxStreams = 100

var (
	// ErrNoDevice is returned by Init when no device was selected.
	ErrNoDevice = errors.New("engine: no output device selected")
	// ErrNotInitialized is returned by Replay before Init.
	ErrNotInitialized = errors.New("engine: stream not initialized")
	// ErrNoStream is returned when there is no current stream.
	ErrNoStream = errors.New("engine: no current stream")
)

var defaultEngine = New()

func init() {
	plstream.Register(plstream.LibraryBuiltin, defaultEngine)
}

var _ plstream.Plotter = (*Engine)(nil)

// Default returns the engine registered as the builtin library.
func Default() *Engine { return defaultEngine }

// Engine emulates the stream table of the native library: a fixed number of
// slots and one ambient current stream that every call applies to.
//
// An Engine is not safe for concurrent use. Streams created through package
// plstream serialize their calls already.
type Engine struct {
	streams [MaxStreams]*stream
	current int
}

type stream struct {
	id    int
	state State

	device string
	output string
	dev    driver.Device

	pages     int
	inPage    bool
	replaying bool
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{current: -1}
}

func (e *Engine) get(handle int) *stream {
	if handle < 0 || handle >= MaxStreams {
		return nil
	}
	return e.streams[handle]
}

// cur returns the current stream, or nil.
func (e *Engine) cur() *stream {
	st := e.get(e.current)
	if st == nil {
		plstream.Logger().Debug("engine: call without a current stream",
			slog.Int("stream_id", e.current))
	}
	return st
}

// CreateStream takes the lowest free slot. It returns -1 if the table is full.
func (e *Engine) CreateStream() int {
	for i, st := range e.streams {
		if st == nil {
			e.streams[i] = &stream{id: i, state: NewState()}
			return i
		}
	}
	return -1
}

// SetCurrentStream makes handle the current stream.
func (e *Engine) SetCurrentStream(handle int) {
	e.current = handle
}

// EndCurrentStream finishes any open page, closes the device and frees the
// slot of the current stream.
func (e *Engine) EndCurrentStream() {
	st := e.cur()
	if st == nil {
		return
	}

	if err := st.endPage(); err != nil {
		st.logDeviceError("failed to end page", err)
	}

	if st.dev != nil {
		if err := st.dev.Close(); err != nil {
			st.logDeviceError("failed to close device", err)
		}
		st.dev = nil
	}

	e.streams[st.id] = nil
	e.current = -1
}

// CopyStreamState copies the state of src into the current stream.
func (e *Engine) CopyStreamState(src int, noDeviceCoords bool) {
	dst := e.cur()
	from := e.get(src)
	if dst == nil || from == nil {
		return
	}
	dst.state.copyFrom(&from.state, noDeviceCoords)
}

// State returns a copy of the parameters of a stream.
//
// Like every Engine method, State does not lock. On the default engine it
// must only be called from inside plstream.Stream.Do, or from tests that own
// the Engine.
func (e *Engine) State(handle int) (State, bool) {
	st := e.get(handle)
	if st == nil {
		return State{}, false
	}

	state := st.state
	state.Buffer = append([]Command(nil), st.state.Buffer...)
	return state, true
}

// Current returns the current stream handle, or -1. The same locking rules as
// for State apply.
func (e *Engine) Current() int {
	if e.get(e.current) == nil {
		return -1
	}
	return e.current
}

func (st *stream) logDeviceError(msg string, err error) {
	metrics.DeviceErrors.WithLabelValues(st.device).Inc()
	plstream.Logger().Warn(msg,
		slog.Int("stream_id", st.id),
		slog.String("device", st.device),
		slog.String("error", err.Error()),
	)
}
