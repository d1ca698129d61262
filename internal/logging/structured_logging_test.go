package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"spacetime.railviz.dev/internal/appconf"
)

func TestStructuredLogger(t *testing.T) {
	t.Run("writes JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		logger.Info("timetable_loaded",
			slog.String("component", "timetable"),
			slog.Int("trips", 42))

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"timetable_loaded"`)
		assert.Contains(t, output, `"component":"timetable"`)
		assert.Contains(t, output, `"trips":42`)
		assert.Contains(t, output, `"time":`)
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("journey has defects")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "journey has defects")
	})
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		env       appconf.Environment
		verbose   bool
		wantJSON  bool
		wantDebug bool
	}{
		{"development is text", appconf.Development, false, false, false},
		{"production is JSON", appconf.Production, false, true, false},
		{"verbose enables debug", appconf.Test, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.env, tt.verbose)
			logger.Debug("debug line")
			logger.Info("info line")

			output := buf.String()
			assert.Equal(t, tt.wantJSON, bytes.Contains(buf.Bytes(), []byte(`"msg":"info line"`)))
			assert.Equal(t, tt.wantDebug, bytes.Contains([]byte(output), []byte("debug line")))
		})
	}
}

func TestLoggerHelpers(t *testing.T) {
	t.Run("LogError", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogError(logger, "trip rejected", errors.New("journey has no known first time"),
			slog.Int("trip_id", 8),
			slog.String("reason", "unanchored"))

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"trip rejected"`)
		assert.Contains(t, output, `"error":"journey has no known first time"`)
		assert.Contains(t, output, `"trip_id":8`)
		assert.Contains(t, output, `"reason":"unanchored"`)
	})

	t.Run("LogError without error", func(t *testing.T) {
		var buf bytes.Buffer
		LogError(NewStructuredLogger(&buf, slog.LevelInfo), "no error attached", nil)
		assert.NotContains(t, buf.String(), `"error"`)
	})

	t.Run("LogOperation drops zero durations", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogOperation(logger, "gtfs_data_imported",
			slog.String("source", "feed.zip"),
			slog.Int("stops_count", 150),
			slog.Duration("duration", 0))

		output := buf.String()
		assert.Contains(t, output, `"msg":"gtfs_data_imported"`)
		assert.Contains(t, output, `"source":"feed.zip"`)
		assert.Contains(t, output, `"stops_count":150`)
		assert.NotContains(t, output, `"duration"`)

		buf.Reset()
		LogOperation(logger, "timetable_loaded", slog.Duration("duration", time.Second))
		assert.Contains(t, buf.String(), `"duration"`)
	})

	t.Run("LogHTTPRequest", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogHTTPRequest(logger, "GET", "/api/window/2025-03-10", 200, 1.5,
			slog.String("user_agent", "test-client"))

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"http_request"`)
		assert.Contains(t, output, `"method":"GET"`)
		assert.Contains(t, output, `"path":"/api/window/2025-03-10"`)
		assert.Contains(t, output, `"status":200`)
		assert.Contains(t, output, `"duration_ms":1.5`)
		assert.Contains(t, output, `"user_agent":"test-client"`)

		buf.Reset()
		LogHTTPRequest(logger, "GET", "/api/stations", 500, 3)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("nil logger is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogError(nil, "x", assert.AnError)
			LogOperation(nil, "x")
			LogHTTPRequest(nil, "GET", "/", 200, 0)
		})
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("stores and retrieves logger from context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		ctx := WithLogger(context.Background(), logger)
		retrieved := FromContext(ctx)
		require.NotNil(t, retrieved)

		retrieved.Info("test from context")
		assert.Contains(t, buf.String(), "test from context")
	})

	t.Run("returns default logger when not in context", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger)
	})
}
