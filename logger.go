package gatsby

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with query-engine-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTypes adds the candidate type names to the logger.
func (l *Logger) WithTypes(types []string) *Logger {
	return &Logger{
		Logger: l.Logger.With("types", types),
	}
}

// LogQuery logs one query execution.
func (l *Logger) LogQuery(ctx context.Context, types []string, results int, absent bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"types", types,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"types", types,
			"results", results,
			"absent", absent,
		)
	}
}

// LogIndexBuild logs a typed-chain index build.
func (l *Logger) LogIndexBuild(ctx context.Context, chain []string, types []string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index build failed",
			"chain", chain,
			"types", types,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "index built",
			"chain", chain,
			"types", types,
		)
	}
}
