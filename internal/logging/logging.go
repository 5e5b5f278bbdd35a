// Package logging builds the zerolog loggers used across the service.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a root logger writing to w at the named level. Unknown levels
// fall back to info. With pretty set, output is human-readable console
// text instead of JSON lines.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Namespace derives a sub-logger tagged with ns, e.g. "app:db".
func Namespace(l zerolog.Logger, ns string) zerolog.Logger {
	return l.With().Str("ns", ns).Logger()
}
