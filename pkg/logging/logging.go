package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents a log level.
type Level = slog.Level

// Format represents the log output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var levels = map[string]Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Config describes a logger in the string form used by config files,
// ITEMD_LOG_* variables and flags.
type Config struct {
	Level  string // debug, info, warn or error; empty means info
	Format string // text or json; empty means text
	Output io.Writer
	// AddSource adds source file and line to log entries.
	AddSource bool
}

// New creates a logger from cfg. Values that do not parse fall back to info
// and text, since the server config has already been validated by then.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		format = FormatText
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// Nop returns a no-op logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel parses a level name, ignoring case. The empty string is info.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	if level, ok := levels[strings.ToLower(s)]; ok {
		return level, nil
	}
	return slog.LevelInfo, fmt.Errorf("must be one of debug, info, warn, error; got %q", s)
}

// ParseFormat parses a format name, ignoring case. The empty string is text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("must be text or json; got %q", s)
}
