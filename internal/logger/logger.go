// Package logger configures the zerolog logger shared by the CLI and the
// development server.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Logger is the process logger. It discards everything until Init runs.
var Logger = zerolog.Nop()

// Init configures the logger on stdout
func Init(level, format string) zerolog.Logger {
	return InitWithWriter(level, format, os.Stdout)
}

// InitWithWriter configures the logger on out. Format is "json" or anything
// else for the human readable console writer.
func InitWithWriter(level, format string, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLogLevel(level))

	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: !isTerminal(out)}
	}

	Logger = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = Logger
	return Logger
}

// parseLogLevel accepts zerolog level names plus "warning" and "off".
// Unknown values fall back to info.
func parseLogLevel(level string) zerolog.Level {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "warning":
		return zerolog.WarnLevel
	case "off":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	default:
		parsed, err := zerolog.ParseLevel(l)
		if err != nil || parsed == zerolog.NoLevel {
			return zerolog.InfoLevel
		}
		return parsed
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// GetLogger returns the configured logger
func GetLogger() zerolog.Logger {
	return Logger
}
