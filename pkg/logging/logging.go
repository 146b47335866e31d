// Package logging builds the console's slog loggers. Level and format are
// plain strings in configuration and are resolved through the tables below.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level is a logging severity name.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var slogLevels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// Validate rejects names missing from the level table.
func (l Level) Validate() error {
	if _, ok := slogLevels[l]; !ok {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l)
	}
	return nil
}

// ToSlogLevel maps l onto slog; unknown names log at info.
func (l Level) ToSlogLevel() slog.Level {
	if lvl, ok := slogLevels[l]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Format is the log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type handlerFunc func(io.Writer, *slog.HandlerOptions) slog.Handler

var handlerFuncs = map[Format]handlerFunc{
	FormatText: func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
	FormatJSON: func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, o) },
}

func (f Format) Validate() error {
	if _, ok := handlerFuncs[f]; !ok {
		return fmt.Errorf("invalid log format: %s (must be text or json)", f)
	}
	return nil
}

// New logs to stdout.
func New(cfg *Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter logs to w. An unrecognized format falls back to text.
func NewWithWriter(cfg *Config, w io.Writer) *slog.Logger {
	build, ok := handlerFuncs[cfg.Format]
	if !ok {
		build = handlerFuncs[FormatText]
	}
	return slog.New(build(w, &slog.HandlerOptions{Level: cfg.Level.ToSlogLevel()}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
