// Package logging builds the service logger: the log/slog API on top of a
// charmbracelet/log handler.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	charm "github.com/charmbracelet/log"
)

// New returns a slog.Logger writing to w with the given level and format
// ("text", "logfmt" or "json").
func New(w io.Writer, level, format string) *slog.Logger {
	handler := charm.NewWithOptions(w, charm.Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return slog.New(handler)
}

// ParseLevel parses a string log level. Unknown values fall back to info.
func ParseLevel(level string) charm.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return charm.DebugLevel
	case "warn", "warning":
		return charm.WarnLevel
	case "error":
		return charm.ErrorLevel
	default:
		return charm.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown values fall back to text.
func ParseFormatter(format string) charm.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return charm.JSONFormatter
	case "logfmt":
		return charm.LogfmtFormatter
	default:
		return charm.TextFormatter
	}
}
