// Package logger builds the application's structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Off disables logging when used as Options.File.
const Off = "off"

type Options struct {
	Level  string // debug, info, warn or error
	File   string // empty for stderr, Off to discard, otherwise a path appended to
	Format string // text or json
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for opts and a closer for its output. An unknown level
// or format falls back to warn/text and the fallback is logged.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var output io.Writer
	var closer io.Closer = nopCloser{}

	switch opts.File {
	case "":
		output = os.Stderr
	case Off, os.DevNull:
		return slog.New(slog.DiscardHandler), closer, nil
	default:
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		output, closer = f, f
	}

	logger, warnings := build(output, opts)
	for _, w := range warnings {
		logger.Warn(w, "level", opts.Level, "format", opts.Format)
	}
	return logger, closer, nil
}

func build(w io.Writer, opts Options) (*slog.Logger, []string) {
	var warnings []string

	level, ok := ParseLevel(opts.Level)
	if !ok {
		warnings = append(warnings, "could not parse logger level, using warn")
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "text", "":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		warnings = append(warnings, "could not parse logger format, using text")
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler), warnings
}

// ParseLevel maps a level name to its slog level. Unknown names yield warn.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelWarn, false
}
