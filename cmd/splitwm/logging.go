package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/splitwm/internal/config"
	"golang.org/x/term"
)

func newLogger(cfg *config.Config, out *os.File) *slog.Logger {
	json := cfg.LogFormat == "json" || (cfg.LogFormat == "auto" && !term.IsTerminal(int(out.Fd())))
	return slog.New(newHandler(out, json, logLevel(cfg.LogLevel)))
}

func newHandler(w io.Writer, json bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
