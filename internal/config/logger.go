package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, s)
	}
	return lvl, nil
}

// NewLogger returns a JSON logger appending to the configured log file. The
// terminal is owned by the UI, so nothing is written to stdout or stderr. An
// empty LogPath discards all records.
func NewLogger(c Config) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if c.LogPath == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("config: create log dir: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("config: open log: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, f, nil
}
