// Package log configures structured logging for warboard using log/slog with
// a tint handler on stderr.
package log

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/warboard/warboard/internal/redact"
)

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written to stderr. Colors are disabled by noColor.
func Setup(verbose, quiet, noColor bool) {
	slog.SetDefault(New(os.Stderr, Level(verbose, quiet), noColor))
}

// Level maps the verbosity flags to a slog level. Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New returns a tint logger writing to w. String attributes pass through
// redact so source credentials never reach the log; empty strings are dropped.
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindString {
				s := a.Value.String()
				if s == "" {
					return slog.Attr{}
				}
				a.Value = slog.StringValue(redact.String(s))
			}
			return a
		},
	}))
}
