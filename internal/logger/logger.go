// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with serviceName writing JSON to stdout.
func New(serviceName string) zerolog.Logger {
	return NewWithWriter(os.Stdout, serviceName, "info")
}

func NewWithWriter(writer io.Writer, serviceName string, level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(writer).Level(parsed).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
