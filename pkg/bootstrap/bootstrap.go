// Package bootstrap wires process-level dependencies: logging and the
// embedded cart database.
package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	badger "github.com/dgraph-io/badger/v4"
)

// NewLogger creates a new slog.Logger instance with the specified log level.
func NewLogger(level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewJSONHandler(os.Stdout, loggerOpts)
	logger := slog.New(logHandler)
	return logger
}

// NewBadgerDB opens the embedded key-value database at the given path.
// Badger's own chatty logger is silenced; the caller logs open/close.
func NewBadgerDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", path, err)
	}
	return db, nil
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
