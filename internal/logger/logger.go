// Package logger configures the process-wide zerolog logger.
//
// All logging goes to stderr so the serve mode can keep stdout free for
// the JSON-RPC protocol stream.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a console-formatted logger writing to w at the given
// level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Setup creates the standard stderr logger. With debug true the level
// drops to Debug, otherwise Info.
func Setup(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return New(os.Stderr, level)
}
