package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{Level: "warn", Format: "text"})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLoggerJSONWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{Level: "debug", Format: "json"}).
		WithComponent("portal").
		WithOperation("send")

	logger.Debug("dispatched", slog.String("request", "GET /contacts/v1/properties"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "portal", record["component"])
	assert.Equal(t, "send", record["operation"])
	assert.Equal(t, "dispatched", record["msg"])
}

func TestLogErrorAPIError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{Level: "info", Format: "json"})

	err := types.NewServerError("internal error", 500)
	logger.LogError(context.Background(), err, "call failed")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	group, ok := record["api_error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "server", group["kind"])
	assert.Equal(t, float64(500), group["code"])
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{Level: "info"})

	require.NoError(t, logger.LogOperation(context.Background(), "ok", func() error { return nil }))
	assert.Contains(t, buf.String(), "operation completed")

	boom := errors.New("boom")
	err := logger.LogOperation(context.Background(), "bad", func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.Contains(buf.String(), "operation failed"))
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
