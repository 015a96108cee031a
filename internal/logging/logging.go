// Package logging builds the stderr diagnostics logger. Ranked output goes
// to stdout; everything here stays off it.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// ValidLevel reports whether level names a supported log level. The empty
// string is accepted and means info.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// ParseLevel converts a config level name to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level string, verbose bool) *log.Logger {
	lvl := ParseLevel(level)
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:        lvl,
		Prefix:       "storyrank",
		ReportCaller: verbose,
	})
}
