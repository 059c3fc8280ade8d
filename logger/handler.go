package logger

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
)

// ColorWriter colorizes each log line written to it according to its level field,
// as emitted by [slog.TextHandler].
// The level field is the first one, or the second after time.
type ColorWriter struct {
	out io.Writer
	mu  sync.Mutex
}

var (
	levelField = []byte("level=")
	timeField  = []byte("time=")
)

var levelColors = []struct {
	level []byte
	color *color.Color
}{
	{[]byte("DEBUG"), color.New(color.FgWhite)},
	{[]byte("INFO"), color.New(color.FgBlue)},
	{[]byte("WARN"), color.New(color.FgYellow)},
	{[]byte("ERROR"), color.New(color.FgRed)},
}

// NewColorWriter constructs a *ColorWriter writing to out.
func NewColorWriter(out io.Writer) *ColorWriter { return &ColorWriter{out: out} }

// Write implements [io.Writer].
func (cw *ColorWriter) Write(p []byte) (int, error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	c := levelColor(p)
	if c == nil {
		return cw.out.Write(p)
	}

	line := bytes.TrimRight(p, "\n")
	if _, err := cw.out.Write([]byte(c.Sprint(string(line)) + "\n")); err != nil {
		return 0, err
	}

	return len(p), nil
}

// levelColor picks the color for the level field leading line, if any.
// Levels such as INFO+2 take the color of INFO.
func levelColor(line []byte) *color.Color {
	if bytes.HasPrefix(line, timeField) {
		i := bytes.IndexByte(line, ' ')
		if i < 0 {
			return nil
		}
		line = line[i+1:]
	}

	if !bytes.HasPrefix(line, levelField) {
		return nil
	}

	val := line[len(levelField):]
	if i := bytes.IndexByte(val, ' '); i >= 0 {
		val = val[:i]
	}

	for _, lc := range levelColors {
		if bytes.HasPrefix(val, lc.level) {
			return lc.color
		}
	}

	return nil
}

// TruncSourceAttr trims the source file down to its parent directory and name, e.g.:
//
//	/home/dev/waypoint/web/handler.go => web/handler.go
func TruncSourceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}

	src, ok := a.Value.Any().(*slog.Source)
	if !ok {
		return a
	}

	dir, file := filepath.Split(src.File)
	src.File = filepath.Join(filepath.Base(dir), file)

	return a
}

// DeleteLevelAttr drops the level from a record.
func DeleteLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		return slog.Attr{}
	}

	return a
}

// DeleteMessageAttr drops the message from a record.
func DeleteMessageAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.MessageKey {
		return slog.Attr{}
	}

	return a
}
