// Package logging provides the shared structured logger for flint.
//
// It wraps [log/slog] with a single initialization point so every component
// writes through the same handler at the same level. The level is taken from
// the FLINT_LOG_LEVEL environment variable (debug, info, warn, error) and
// defaults to INFO.
//
// Usage:
//
//	log := logging.New("watcher")
//	log.Info("watching notes dir", "path", dir)
//
// Output goes to stderr so it never corrupts the terminal UI on stdout.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	// initLogger guards one-time creation of the base logger even when
	// several components call New concurrently during startup.
	initLogger sync.Once

	baseLogger *slog.Logger
)

// New returns a logger scoped to the given component name. The name is
// attached as a "component" attribute on every record so logs can be
// filtered by subsystem (e.g. "app", "config", "watcher"). An empty name
// returns the shared base logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("FLINT_LOG_LEVEL")),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// parseLevel converts a level string to a [slog.Level]. Unrecognized values
// fall back to INFO.
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
