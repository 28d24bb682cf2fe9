// Package logging builds the structured logger shared by the CLI, the
// interactive shell and the expense store.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Component names attached to log records.
const (
	ComponentApp      = "app"
	ComponentStore    = "store"
	ComponentShell    = "shell"
	ComponentSnapshot = "snapshot"
	ComponentTUI      = "tui"
)

// Options controls logger construction.
type Options struct {
	Level  slog.Level
	Writer io.Writer // defaults to os.Stderr
}

// New returns a text logger writing to opts.Writer.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level}))
}

// ForComponent tags every record from the returned logger with component.
func ForComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With("component", component)
}

// ParseLevel maps a config or env level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
