package plstream

import "github.com/pkg/errors"

var (
	// ErrCreate is returned when the library hands out a negative stream id.
	ErrCreate = errors.New("plstream: cannot create PLplot stream")
	// ErrDisposed is returned by ID once the stream has been closed.
	ErrDisposed = errors.New("plstream: stream was disposed")
	// ErrEnded is returned by ID once the stream has ended but is not yet
	// closed.
	ErrEnded = errors.New("plstream: stream has ended")

	// ErrUseAfterEnd is returned when an ended stream is asked to become the
	// current stream.
	ErrUseAfterEnd = errors.New("plstream: activation after end")
	// ErrUseAfterDispose is returned when a closed stream is asked to become
	// the current stream.
	ErrUseAfterDispose = errors.New("plstream: activation after dispose")

	// ErrNoLibrary is returned by New when no library is registered.
	ErrNoLibrary = errors.New("plstream: no library registered")
	// ErrNotPlotter is returned by plotting calls on a stream whose library
	// only implements the stream primitives.
	ErrNotPlotter = errors.New("plstream: library does not implement Plotter")
	// ErrLibraryMismatch is returned by CopyState across two libraries.
	ErrLibraryMismatch = errors.New("plstream: streams belong to different libraries")
	// ErrLength is returned by Line when the coordinate slices differ in
	// length.
	ErrLength = errors.New("plstream: mismatched coordinate lengths")
	// ErrNilColor is returned by SetColorMap when given a nil colour.
	ErrNilColor = errors.New("plstream: nil colour")
)
