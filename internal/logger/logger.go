// Package logger sets up zerolog for the command-line tools.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ParseLevel maps debug, info, warn and error to a zerolog level. Anything
// else is info.
func ParseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init sets the global level and returns a console logger writing to w, or
// to stderr when w is nil.
func Init(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := ParseLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.SetGlobalLevel(lvl)
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
	l.Debug().
		Str("level", lvl.String()).
		Str("time_format", "unix ms").
		Msg("logger initialized")
	return l
}
