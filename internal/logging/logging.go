package logging

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// NewStructuredLogger creates a JSON slog logger writing to w at the given
// level.
func NewStructuredLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithLogger stores the logger in the context for downstream handlers.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default()
// when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// LogOperation records a named operation at info level. Operation names are
// snake_case so they can be grepped and graphed.
func LogOperation(logger *slog.Logger, operation string, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(context.Background(), slog.LevelInfo, operation, attrs...)
}

// LogError records an error with a human-readable message.
func LogError(logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	all := make([]slog.Attr, 0, len(attrs)+1)
	all = append(all, slog.Any("error", err))
	all = append(all, attrs...)
	logger.LogAttrs(context.Background(), slog.LevelError, msg, all...)
}

// LogHTTPRequest records one served HTTP request.
func LogHTTPRequest(logger *slog.Logger, method, path string, statusCode int, durationMs float64, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	all := make([]slog.Attr, 0, len(attrs)+4)
	all = append(all,
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", statusCode),
		slog.Float64("duration_ms", durationMs))
	all = append(all, attrs...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "http_request", all...)
}

// SafeCloseWithLogging closes c and logs a close failure instead of
// swallowing it. Meant for defer sites where the error cannot be returned.
func SafeCloseWithLogging(c io.Closer, logger *slog.Logger, name string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		LogError(logger, "failed to close "+name, err)
	}
}

// SafeRollbackWithLogging rolls back tx, ignoring sql.ErrTxDone from
// transactions that already committed.
func SafeRollbackWithLogging(tx *sql.Tx, logger *slog.Logger, operation string) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		LogError(logger, "failed to roll back "+operation, err)
	}
}
