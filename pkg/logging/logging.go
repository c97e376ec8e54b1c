// Package logging builds the slog loggers used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLevel  = "AQ_TOML_LOG"
	EnvFormat = "AQ_TOML_LOG_FORMAT"
)

type Options struct {
	// Level is one of debug, info, warn, error or off. Empty means warn.
	Level string
	// Format is text or json. Empty means text.
	Format string
	Writer io.Writer
}

// New returns a logger for opts. An "off" level discards everything.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	lvl, off, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if off {
		return Discard(), nil
	}
	ho := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(opts.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, ho)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, ho)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}

// FromEnv configures a stderr logger from AQ_TOML_LOG and AQ_TOML_LOG_FORMAT,
// falling back to warn-level text on bad values.
func FromEnv() *slog.Logger {
	l, err := New(Options{Level: os.Getenv(EnvLevel), Format: os.Getenv(EnvFormat)})
	if err != nil {
		l, _ = New(Options{})
		l.Warn("ignoring logging environment", "err", err)
	}
	return l
}

func ParseLevel(s string) (lvl slog.Level, off bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn", "warning":
		return slog.LevelWarn, false, nil
	case "debug":
		return slog.LevelDebug, false, nil
	case "info":
		return slog.LevelInfo, false, nil
	case "error":
		return slog.LevelError, false, nil
	case "off", "none":
		return 0, true, nil
	default:
		return 0, false, fmt.Errorf("unknown log level %q", s)
	}
}

func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
