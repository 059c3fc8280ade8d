package logger

import (
	"log/slog"
	"net/http"

	"github.com/xy-planning-network/waypoint"
)

const logContextKey = "log_context"

var _ slog.LogValuer = LogContext{}

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request
}

// LogValue eliminates zero-value fields, grouping what remains.
//
// The password query parameter of LogContext.Request is masked.
//
// LogValue implements [slog.LogValuer].
func (lc LogContext) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)
	if lc.Data != nil {
		attrs = append(attrs, slog.Any("data", lc.Data))
	}

	if lc.Error != nil {
		attrs = append(attrs, slog.String("error", lc.Error.Error()))
	}

	if lc.Request != nil && lc.Request.URL != nil {
		u := *lc.Request.URL
		q := u.Query()
		waypoint.Mask(q, "password")
		u.RawQuery = q.Encode()

		attrs = append(attrs, slog.Group(
			"request",
			slog.String("method", lc.Request.Method),
			slog.String("url", u.String()),
		))
	}

	return slog.GroupValue(attrs...)
}
