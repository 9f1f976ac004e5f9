// Package logging configures the zerolog logger used by the CLI layer.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w. Without debug only errors are
// emitted, matching the tool's quiet default. Human-readable console
// output is used when w is a terminal, JSON otherwise.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.ErrorLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
