// Package logging wraps log/slog with the field names used across knotgraph.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with knotgraph-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger writing human-readable lines to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger writing JSON lines to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop returns a Logger that discards everything.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// WithDataset tags every record with the dataset path.
func (l *Logger) WithDataset(path string) *Logger {
	return &Logger{Logger: l.Logger.With("dataset", path)}
}

// LogLoad logs the outcome of a dataset load.
func (l *Logger) LogLoad(ctx context.Context, source string, records, modulus int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"source", source,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "dataset loaded",
		"source", source,
		"records", records,
		"modulus", modulus,
	)
}

// LogQuery logs one engine query issued by a driver.
func (l *Logger) LogQuery(ctx context.Context, op string, angles []int, results int) {
	l.DebugContext(ctx, "query completed",
		"op", op,
		"angles", angles,
		"results", results,
	)
}
