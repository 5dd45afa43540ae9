package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLoggerAndFromContext(t *testing.T) {
	logger := NewStructuredLogger(&bytes.Buffer{}, slog.LevelInfo)

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_MissingLoggerFallsBack(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestLogOperation_EmitsOperationAsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogOperation(logger, "wards_loaded", slog.Int("count", 198))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "wards_loaded", entry["msg"])
	assert.Equal(t, float64(198), entry["count"])
}

func TestLogError_IncludesError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogError(logger, "ward dataset load failed", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogHTTPRequest_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogHTTPRequest(logger, "GET", "/api/v1/wards", 200, 1.25,
		slog.String("request_id", "abc"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/v1/wards", entry["path"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "abc", entry["request_id"])
}

type failingCloser struct{ err error }

func (f failingCloser) Close() error { return f.err }

func TestSafeCloseWithLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	SafeCloseWithLogging(failingCloser{err: errors.New("close failed")}, logger, "response_body")
	assert.Contains(t, buf.String(), "response_body")

	buf.Reset()
	SafeCloseWithLogging(failingCloser{}, logger, "response_body")
	assert.Empty(t, buf.String(), "clean close should log nothing")

	SafeCloseWithLogging(nil, logger, "response_body")
}
