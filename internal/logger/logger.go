// Package logger wraps github.com/charmbracelet/log with the factory
// functions the rest of this module builds loggers from, so every
// package logs through the same styling and level conventions.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default returns a logger at the ambient global level with no
// timestamp, suitable for short-lived construction/query paths.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// New returns a logger with timestamps enabled, for longer-running
// processes such as the demo CLI's REPL loop.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig returns a fully customized logger.
func NewWithConfig(prefix string, level log.Level, caller, timestamp bool, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: timestamp,
		Formatter:       formatter,
	})
}

// ParseLevel maps a config string to a charm log level, degrading to
// Warn on anything unrecognized rather than erroring: a bad level in a
// config file should never abort construction.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}
