// Package logger builds slog handlers from the log configuration.
// It does not decide where logs go, internal/iologger does that.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/nutrigrade/nutrigrade/pkg/config"
)

// NewHandler creates a slog.Handler writing to w according to the
// configuration. Invalid levels default to Info and unknown formats
// default to JSON.
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	switch strings.ToLower(cfg.Format) {
	case "text", "tint":
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// New creates a slog.Logger writing to w.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	return slog.New(NewHandler(w, cfg))
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
