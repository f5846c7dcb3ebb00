package config

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger at INFO in production and a text logger at
// DEBUG with source locations everywhere else. The CLI writes to stderr so
// stdout stays machine readable.
func NewLogger(w io.Writer, env string) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		AddSource: env == "development",
	}

	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(w, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("service", "ponto"))
}
