package plstream

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/diamondburned/plstream/internal/metrics"
	"github.com/pkg/errors"
)

// libMu serializes every call that touches the library's current stream,
// across all Stream values. The libraries have exactly one ambient current
// stream, so a per-stream lock would not be enough.
var libMu sync.Mutex

func lockLibrary() {
	start := time.Now()
	libMu.Lock()
	metrics.LockWait.Observe(time.Since(start).Seconds())
}

func unlockLibrary() { libMu.Unlock() }

type streamState uint8

const (
	stateLive streamState = iota
	stateEnded
	stateDisposed
)

// stream is the part of a Stream that the runtime cleanup holds on to. It
// must never point back at its Stream, or the Stream would never become
// unreachable.
type stream struct {
	lib    Library
	handle int // valid only in stateLive
	state  streamState
}

// Stream is a PLplot stream. A new stream is created by New and ended by
// Close.
//
// A Stream is safe for concurrent use; however, all calls from all streams are
// serialized.
type Stream struct {
	st      *stream
	cleanup runtime.Cleanup
}

// New creates a stream on the default library.
func New() (*Stream, error) {
	lib := Default()
	if lib == nil {
		return nil, ErrNoLibrary
	}
	return NewWithLibrary(lib)
}

// NewWithLibrary creates a stream on the given library.
func NewWithLibrary(lib Library) (*Stream, error) {
	if lib == nil {
		return nil, ErrNoLibrary
	}

	lockLibrary()
	handle := lib.CreateStream()
	unlockLibrary()

	if handle < 0 {
		metrics.CreateFailures.Inc()
		return nil, errors.Wrapf(ErrCreate, "library returned handle %d", handle)
	}

	st := &stream{lib: lib, handle: handle, state: stateLive}
	s := &Stream{st: st}
	s.cleanup = runtime.AddCleanup(s, (*stream).reclaim, st)

	metrics.StreamsCreated.Inc()
	metrics.StreamsLive.Inc()
	Logger().Debug("stream created", slog.Int("stream_id", handle))

	return s, nil
}

// id returns the handle. The library lock must be held.
func (st *stream) id() (int, error) {
	switch st.state {
	case stateDisposed:
		return -1, ErrDisposed
	case stateEnded:
		return -1, ErrEnded
	default:
		return st.handle, nil
	}
}

// activate makes st the library's current stream. The library lock must be
// held, and activate must be called again before every call that targets the
// current stream.
func (st *stream) activate() error {
	switch st.state {
	case stateDisposed:
		return ErrUseAfterDispose
	case stateEnded:
		return ErrUseAfterEnd
	}
	st.lib.SetCurrentStream(st.handle)
	return nil
}

// end releases the handle if st is still live. The library lock must be held.
func (st *stream) end(reason string) {
	if st.state != stateLive {
		return
	}

	handle := st.handle

	// Cannot fail: st is live.
	_ = st.activate()
	st.lib.EndCurrentStream()

	st.handle = -1
	st.state = stateEnded

	metrics.StreamsEnded.WithLabelValues(reason).Inc()
	metrics.StreamsLive.Dec()
	Logger().Debug("stream ended",
		slog.Int("stream_id", handle),
		slog.String("reason", reason),
	)
}

// dispose ends st and marks it disposed. It reports false if st was already
// disposed. The library lock must be held.
func (st *stream) dispose(reason string) bool {
	if st.state == stateDisposed {
		return false
	}
	st.end(reason)
	st.state = stateDisposed
	return true
}

// reclaim is the runtime cleanup for a Stream that was never closed.
func (st *stream) reclaim() {
	lockLibrary()
	defer unlockLibrary()

	handle := st.handle
	live := st.state == stateLive

	if st.dispose(metrics.ReasonCleanup) && live {
		Logger().Warn("stream was not closed; released by cleanup",
			slog.Int("stream_id", handle),
		)
	}
}

// ID returns the stream id as returned by the library. It fails with
// ErrDisposed after Close and with ErrEnded after End.
func (s *Stream) ID() (int, error) {
	lockLibrary()
	defer unlockLibrary()
	defer runtime.KeepAlive(s)

	return s.st.id()
}

// End ends the stream and releases its handle. Calling End more than once, or
// after Close, does nothing.
func (s *Stream) End() {
	lockLibrary()
	defer unlockLibrary()
	defer runtime.KeepAlive(s)

	s.st.end(metrics.ReasonEnd)
}

// Close ends the stream and marks it disposed. Close always returns nil; it is
// safe to call more than once.
func (s *Stream) Close() error {
	lockLibrary()
	disposed := s.st.dispose(metrics.ReasonClose)
	unlockLibrary()

	if disposed {
		s.cleanup.Stop()
	}
	return nil
}

// CopyState copies state parameters from the reference stream src into s.
// Device coordinates are not copied if noDeviceCoords is true.
//
// This is used to make save files of selected plots: after initializing s on
// a file device, copy the state of the displayed stream into it, then call
// Replay and EndPage. The plot buffer of src must have been
// enabled.
func (s *Stream) CopyState(src *Stream, noDeviceCoords bool) error {
	if src == nil {
		return errors.New("plstream: nil source stream")
	}

	lockLibrary()
	defer unlockLibrary()
	defer runtime.KeepAlive(s)
	defer runtime.KeepAlive(src)

	srcID, err := src.st.id()
	if err != nil {
		return errors.Wrap(err, "failed to read source stream")
	}

	if src.st.lib != s.st.lib {
		return ErrLibraryMismatch
	}

	if err := s.st.activate(); err != nil {
		return err
	}

	s.st.lib.CopyStreamState(srcID, noDeviceCoords)

	Logger().Debug("stream state copied",
		slog.Int("stream_id", s.st.handle),
		slog.Int("source_id", srcID),
		slog.Bool("no_device_coords", noDeviceCoords),
	)

	return nil
}

// Library returns the library the stream was created on.
func (s *Stream) Library() Library {
	return s.st.lib
}

func (s *Stream) String() string {
	lockLibrary()
	defer unlockLibrary()

	switch s.st.state {
	case stateDisposed:
		return "PLplot stream (disposed)"
	case stateEnded:
		return "PLplot stream (ended)"
	default:
		return fmt.Sprintf("PLplot stream %d", s.st.handle)
	}
}
