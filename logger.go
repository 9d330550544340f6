package dictgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dictgo-specific context.
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

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", n),
	}
}

// LogGrow logs a parallel-array growth event.
func (l *Logger) LogGrow(oldSize, newSize, pairs int) {
	l.Debug("dictionary grown",
		"old_size", oldSize,
		"new_size", newSize,
		"pairs", pairs,
	)
}

// LogSlotReuse logs reuse of a tombstoned slot.
func (l *Logger) LogSlotReuse(slot int) {
	l.Debug("tombstoned slot reused",
		"slot", slot,
	)
}
