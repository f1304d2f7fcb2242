package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/yomi/internal/config"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("lookup", "text", "食べた")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "lookup", m["msg"])
	assert.Equal(t, "食べた", m["text"])
}

func TestNewLogger_TextFormatFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNewLogger_SetsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{}, &buf)
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" Error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}
