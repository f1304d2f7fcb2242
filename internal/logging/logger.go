// Package logging builds the application logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/f3rmion/yomi/internal/config"
)

// NewLogger creates a *slog.Logger writing to w and sets it as the default
// logger via slog.SetDefault.
//
// Format "json" produces JSON lines; anything else produces text.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
