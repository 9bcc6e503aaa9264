package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/imkonsowa/restaurant-chatbot/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup installs the default slog logger described by cfg and returns the
// writer behind it so callers can close a rotating file on shutdown.
func Setup(cfg config.Logging) io.Writer {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize < 1 {
			maxSize = 10
		}
		out = &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  maxSize,
		}
	}

	slog.SetDefault(slog.New(NewHandler(out, cfg)))

	return out
}

func NewHandler(out io.Writer, cfg config.Logging) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(out, opts)
	}

	return slog.NewJSONHandler(out, opts)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
