// Package logging builds the leveled diagnostic logger used across clido.
// User-facing output goes through package ui; this logger is for tracing
// what the store and file layer did.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const prefix = "clido"

// ParseLevel maps a level name to a log.Level. Unknown names fall back to
// warn so a typo in a config file never silences errors.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
