package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/waypoint"
)

// A LogRequestRecord is the structured record LogRequest emits for every request.
type LogRequestRecord struct {
	BodySize       int64         `json:"bodySize"`
	Duration       time.Duration `json:"duration"`
	Host           string        `json:"host"`
	ID             string        `json:"id"`
	IPAddr         string        `json:"ipAddr"`
	Method         string        `json:"method"`
	Path           string        `json:"path"`
	Protocol       string        `json:"protocol"`
	Referrer       string        `json:"referrer"`
	ReqContentType string        `json:"reqContentType"`
	Scheme         string        `json:"scheme"`
	Status         int           `json:"status"`
	URI            string        `json:"uri"`
	UserAgent      string        `json:"userAgent"`
}

// LogValue implements [slog.LogValuer].
func (rec LogRequestRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("bodySize", rec.BodySize),
		slog.Duration("duration", rec.Duration),
		slog.String("host", rec.Host),
		slog.String("id", rec.ID),
		slog.String("ipAddr", rec.IPAddr),
		slog.String("method", rec.Method),
		slog.String("path", rec.Path),
		slog.String("protocol", rec.Protocol),
		slog.String("referrer", rec.Referrer),
		slog.String("reqContentType", rec.ReqContentType),
		slog.String("scheme", rec.Scheme),
		slog.Int("status", rec.Status),
		slog.String("uri", rec.URI),
		slog.String("userAgent", rec.UserAgent),
	)
}

// LogRequest logs one LogRequestRecord, inlined into the top level of the log entry, per request
// after the request has been handled.
//
// LogRequest masks the value of the password query parameter.
//
// If sl is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(sl *slog.Logger) Adapter {
	if sl == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			q := r.URL.Query()
			waypoint.Mask(q, "password")
			uri := r.URL.Path
			if enc := q.Encode(); enc != "" {
				uri += "?" + enc
			}

			rec := LogRequestRecord{
				BodySize:       m.Written,
				Duration:       m.Duration,
				Host:           r.Host,
				Method:         r.Method,
				Path:           r.URL.Path,
				Protocol:       r.Proto,
				Referrer:       r.Referer(),
				ReqContentType: r.Header.Get("Content-Type"),
				Scheme:         r.URL.Scheme,
				Status:         m.Code,
				URI:            uri,
				UserAgent:      r.UserAgent(),
			}

			if id, ok := r.Context().Value(waypoint.RequestIDKey).(string); ok {
				rec.ID = id
			}

			if ip, ok := r.Context().Value(waypoint.IpAddrKey).(string); ok {
				rec.IPAddr = ip
			}

			attrs := rec.LogValue().Group()
			args := make([]any, len(attrs))
			for i, a := range attrs {
				args[i] = a
			}

			sl.Info("", args...)
		})
	}
}
