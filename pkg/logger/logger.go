package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "wamuzi-news"

// New returns the process logger writing to stdout.
// format "pretty" (or ENV=development) selects the console writer, anything
// else emits JSON lines.
func New(level, format string) zerolog.Logger {
	pretty := format == "pretty" || os.Getenv("ENV") == "development"
	return NewWithWriter(os.Stdout, level, pretty)
}

// NewWithWriter builds the logger on top of w
func NewWithWriter(w io.Writer, level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(w).Level(ParseLevel(level)).With().Timestamp()
	if pretty {
		ctx = ctx.Caller()
	}
	return ctx.Str("service", serviceName).Logger()
}

// ParseLevel maps a config string to a level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
