// Package logger provides charmbracelet/log loggers for the packages that want
// their own prefix. Output goes to stderr; stdout is reserved for IPC.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a charm log that respects the global log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() <= log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
