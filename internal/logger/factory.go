package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewWithConfig creates a charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// Discard returns a logger that drops everything, for tests and quiet runs.
func Discard() *log.Logger {
	return NewWithConfig(io.Discard, "", log.FatalLevel, false, log.TextFormatter)
}
