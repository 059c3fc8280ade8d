package logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)
}

// SlogLogger implements Logger using [log/slog].
type SlogLogger struct {
	l *slog.Logger
}

// New constructs a *SlogLogger writing through sl.
// If sl is nil, [slog.Default] is used.
func New(sl *slog.Logger) *SlogLogger {
	if sl == nil {
		sl = slog.Default()
	}

	return &SlogLogger{l: sl}
}

// Debug writes a debug log.
func (l *SlogLogger) Debug(msg string, ctx *LogContext) { l.log(slog.LevelDebug, msg, ctx) }

// Error writes an error log.
func (l *SlogLogger) Error(msg string, ctx *LogContext) { l.log(slog.LevelError, msg, ctx) }

// Info writes an info log.
func (l *SlogLogger) Info(msg string, ctx *LogContext) { l.log(slog.LevelInfo, msg, ctx) }

// Warn writes a warning log.
func (l *SlogLogger) Warn(msg string, ctx *LogContext) { l.log(slog.LevelWarn, msg, ctx) }

// Slogger exposes the underlying *slog.Logger.
func (l *SlogLogger) Slogger() *slog.Logger { return l.l }

// log builds the record by hand so the source attribute points at the caller of
// Debug, Error, Info or Warn.
func (l *SlogLogger) log(level slog.Level, msg string, ctx *LogContext) {
	if !l.l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// skip runtime.Callers, log, and the level method
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if ctx != nil {
		r.AddAttrs(slog.Any(logContextKey, *ctx))
	}

	_ = l.l.Handler().Handle(context.Background(), r)
}
