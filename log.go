package waypoint

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

var (
	AppLogKind  = slog.StringValue("app")
	HTTPLogKind = slog.StringValue("http")
)

// NewLogLevel parses val, case-insensitively, into a [log/slog.Level].
func NewLogLevel(val string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(val))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrNotValid, val)
	}

	return lvl, nil
}

// Mask replaces all values for key in vals with [LogMaskVal].
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}
