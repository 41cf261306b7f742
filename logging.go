package love

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled returns false, so callers skip
// attribute evaluation and message formatting for disabled levels.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. Stored atomically so SetLogger may
// race with logging from host callbacks on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs the logger used by this module and its sub-packages.
// The module is silent until a logger is installed; passing nil silences
// it again.
//
// Levels in use:
//   - [slog.LevelDebug]: texture unit assignments, shader lifecycle
//   - [slog.LevelInfo]: context restore events
//   - [slog.LevelWarn]: dropped input events, unbalanced unit releases
//
// Example:
//
//	love.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the active logger. The graphics and input packages call
// this so the whole module shares one configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
