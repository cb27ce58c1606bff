package crcgo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// Logger wraps slog.Logger with crcgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithName adds a blob name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithSize adds a size field to the logger.
func (l *Logger) WithSize(size int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// LogSum logs a single checksum computation.
func (l *Logger) LogSum(ctx context.Context, name string, size int64, sum uint32, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "checksum failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "checksum completed",
		"name", name,
		"crc32", Format(sum),
		"size", humanize.IBytes(uint64(size)),
		"elapsed", elapsed,
		"rate", rate(size, elapsed),
	)
}

// LogBatch logs a SumAll call.
func (l *Logger) LogBatch(ctx context.Context, count, failed int, bytes int64, elapsed time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "batch checksum completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
		return
	}
	l.InfoContext(ctx, "batch checksum completed",
		"count", count,
		"bytes", humanize.IBytes(uint64(bytes)),
		"elapsed", elapsed,
		"rate", rate(bytes, elapsed),
	)
}

// LogVerify logs a manifest verification.
func (l *Logger) LogVerify(ctx context.Context, entries, mismatches int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "verification failed",
			"entries", entries,
			"error", err,
		)
	case mismatches > 0:
		l.WarnContext(ctx, "verification found mismatches",
			"entries", entries,
			"mismatches", mismatches,
		)
	default:
		l.InfoContext(ctx, "verification completed",
			"entries", entries,
		)
	}
}

func rate(bytes int64, elapsed time.Duration) string {
	if elapsed <= 0 || bytes <= 0 {
		return "-"
	}
	perSec := float64(bytes) / elapsed.Seconds()
	return humanize.IBytes(uint64(perSec)) + "/s"
}
