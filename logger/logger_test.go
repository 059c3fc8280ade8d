package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/logger"
)

func newTestLogger(b *bytes.Buffer, lvl slog.Level) *logger.SlogLogger {
	opts := &slog.HandlerOptions{AddSource: true, Level: lvl, ReplaceAttr: logger.TruncSourceAttr}
	return logger.New(slog.New(slog.NewJSONHandler(b, opts)))
}

func TestSlogLogger(t *testing.T) {
	for _, tc := range []struct {
		name  string
		log   func(logger.Logger)
		level string
	}{
		{"Debug", func(l logger.Logger) { l.Debug("such fun", nil) }, "DEBUG"},
		{"Info", func(l logger.Logger) { l.Info("such fun", nil) }, "INFO"},
		{"Warn", func(l logger.Logger) { l.Warn("such fun", nil) }, "WARN"},
		{"Error", func(l logger.Logger) { l.Error("such fun", nil) }, "ERROR"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := newTestLogger(b, slog.LevelDebug)

			// Act
			tc.log(l)

			// Assert
			actual := make(map[string]any)
			require.Nil(t, json.Unmarshal(b.Bytes(), &actual))
			require.Equal(t, "such fun", actual["msg"])
			require.Equal(t, tc.level, actual["level"])

			src, ok := actual["source"].(map[string]any)
			require.True(t, ok)
			require.Equal(t, "logger/logger_test.go", src["file"])
		})
	}
}

func TestSlogLoggerLevel(t *testing.T) {
	b := new(bytes.Buffer)
	l := newTestLogger(b, slog.LevelWarn)

	l.Debug("quiet", nil)
	l.Info("quiet", nil)
	require.Zero(t, b.Len())

	l.Warn("loud", nil)
	require.NotZero(t, b.Len())
}

func TestLogContext(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := newTestLogger(b, slog.LevelDebug)
	r := httptest.NewRequest(http.MethodGet, "https://example.com/home?password=hunter2", nil)

	// Act
	l.Error("oops", &logger.LogContext{
		Data:    map[string]any{"test": "data"},
		Error:   errors.New("test"),
		Request: r,
	})

	// Assert
	var actual struct {
		LogContext struct {
			Data    map[string]any `json:"data"`
			Error   string         `json:"error"`
			Request struct {
				Method string `json:"method"`
				URL    string `json:"url"`
			} `json:"request"`
		} `json:"log_context"`
	}
	require.Nil(t, json.Unmarshal(b.Bytes(), &actual))
	require.Equal(t, map[string]any{"test": "data"}, actual.LogContext.Data)
	require.Equal(t, "test", actual.LogContext.Error)
	require.Equal(t, http.MethodGet, actual.LogContext.Request.Method)
	require.Equal(t, "https://example.com/home?password=xxxxxx", actual.LogContext.Request.URL)
}

func TestLogContextZeroValue(t *testing.T) {
	b := new(bytes.Buffer)
	l := newTestLogger(b, slog.LevelDebug)

	l.Info("empty", &logger.LogContext{})

	require.NotContains(t, b.String(), "error")
	require.NotContains(t, b.String(), "request")
}

func TestColorWriter(t *testing.T) {
	// Arrange
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	b := new(bytes.Buffer)
	sl := slog.New(slog.NewTextHandler(logger.NewColorWriter(b), nil))

	// Act
	sl.Error("red alert")

	// Assert
	require.True(t, strings.HasPrefix(b.String(), "\x1b[31m"))
	require.True(t, strings.HasSuffix(b.String(), "\n"))
	require.Contains(t, b.String(), "red alert")
}

func TestColorWriterLevelField(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	tcs := []struct {
		name     string
		log      func(*slog.Logger)
		expected string
	}{
		{"Info-Mentions-Debug", func(sl *slog.Logger) { sl.Info("switching to level=DEBUG") }, "\x1b[34m"},
		{"Warn-Mentions-Error", func(sl *slog.Logger) { sl.Warn("saw level=ERROR", "from", "level=ERROR") }, "\x1b[33m"},
		{"Debug", func(sl *slog.Logger) { sl.Debug("quiet") }, "\x1b[37m"},
		{"Offset-Level", func(sl *slog.Logger) { sl.Log(context.Background(), slog.LevelInfo+2, "loud") }, "\x1b[34m"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			b := new(bytes.Buffer)
			sl := slog.New(slog.NewTextHandler(logger.NewColorWriter(b), &slog.HandlerOptions{Level: slog.LevelDebug}))

			tc.log(sl)

			require.True(t, strings.HasPrefix(b.String(), tc.expected), b.String())
		})
	}

	t.Run("No-Time", func(t *testing.T) {
		b := new(bytes.Buffer)
		opts := &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}
		sl := slog.New(slog.NewTextHandler(logger.NewColorWriter(b), opts))

		sl.Error("level=INFO is not mine")

		require.True(t, strings.HasPrefix(b.String(), "\x1b[31m"), b.String())
	})

	t.Run("Plain-Line", func(t *testing.T) {
		b := new(bytes.Buffer)
		w := logger.NewColorWriter(b)

		n, err := w.Write([]byte("msg=\"level=ERROR\"\n"))

		require.NoError(t, err)
		require.Equal(t, 18, n)
		require.Equal(t, "msg=\"level=ERROR\"\n", b.String())
	})
}

func TestDeleteAttrs(t *testing.T) {
	b := new(bytes.Buffer)
	opts := &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a = logger.DeleteLevelAttr(groups, a)
			return logger.DeleteMessageAttr(groups, a)
		},
	}
	sl := slog.New(slog.NewJSONHandler(b, opts))

	sl.Info("gone", "kept", true)

	actual := make(map[string]any)
	require.Nil(t, json.Unmarshal(b.Bytes(), &actual))
	require.NotContains(t, actual, "level")
	require.NotContains(t, actual, "msg")
	require.Equal(t, true, actual["kept"])
}
