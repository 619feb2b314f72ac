package slogx

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Service string
	Version string
	Env     string // e.g. "dev", "prod"
	Level   string // e.g. "debug", "info", "warn", "error"
	Format  string // e.g. "json", "text"; empty picks text in dev, json otherwise
}

// New returns the process-wide logger and installs it as the slog default.
// Output goes to stdout. When no format is configured, dev runs get the
// readable text handler and everything else gets json for log shippers.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev", // Add source info in dev mode
		Level:     parseLevel(cfg.Level),
	}

	format := strings.ToLower(cfg.Format)
	if format == "" && cfg.Env == "dev" {
		format = "text"
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	// Only stamp identity fields that are actually set; a bare New(Config{})
	// in tests shouldn't drag empty keys through every line.
	attrs := make([]any, 0, 6)
	if cfg.Service != "" {
		attrs = append(attrs, "service", cfg.Service)
	}
	if cfg.Version != "" {
		attrs = append(attrs, "version", cfg.Version)
	}
	if cfg.Env != "" {
		attrs = append(attrs, "env", cfg.Env)
	}

	logger := slog.New(handler)
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}

	slog.SetDefault(logger)
	return logger
}

// parseLevel maps a string to slog.Level.
func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
