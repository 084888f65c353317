package sheaf

import (
	"context"
	"log/slog"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// logger is the active package logger. No atomics: sheaf is single-threaded
// and SetLogger is expected to be called during startup.
var logger = newNopLogger()

// SetLogger configures the logger used by sheaf. By default sheaf produces no
// log output. Pass nil to restore the silent default.
//
// Log levels used by sheaf:
//   - [slog.LevelDebug]: per-flush statistics (requests, groups, timings)
//   - [slog.LevelWarn]: skipped sprites, non power-of-two atlases
//
// Example:
//
//	sheaf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	logger = l
}

// Logger returns the current logger used by sheaf.
func Logger() *slog.Logger {
	return logger
}
