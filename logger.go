package plstream

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by plstream and its sub-packages. By
// default nothing is logged. Passing nil restores the silent default.
//
// Levels:
//   - [slog.LevelDebug]: stream creation, teardown and copy-state
//   - [slog.LevelInfo]: output pages written by devices
//   - [slog.LevelWarn]: leaked streams reclaimed by the runtime, device errors
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call this to share the
// configuration. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
