package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mediasort/internal/config"
)

// LogFileName is the JSON log written inside the configured log directory.
const LogFileName = "mediasort.log"

// Options describes logger construction parameters.
type Options struct {
	Level    string    // debug, info, warn or error; anything else means info
	Format   string    // console (default) or json
	Writer   io.Writer // stderr when nil
	FilePath string    // optional JSON copy of every record
}

type handlerFactory func(io.Writer, *slog.LevelVar, bool) slog.Handler

var formats = map[string]handlerFactory{
	"":        newConsoleHandler,
	"console": newConsoleHandler,
	"json":    newJSONHandler,
}

func noClose() error { return nil }

// New builds a logger. Debug level also records the caller of each entry.
// The returned func closes the log file opened for FilePath; call it once
// the logger is no longer used. It is a no-op when FilePath is empty.
func New(opts Options) (*slog.Logger, func() error, error) {
	factory, ok := formats[strings.ToLower(strings.TrimSpace(opts.Format))]
	if !ok {
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))
	caller := level.Level() <= slog.LevelDebug

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handler := factory(w, level, caller)

	path := strings.TrimSpace(opts.FilePath)
	if path == "" {
		return slog.New(handler), noClose, nil
	}
	file, err := openLogFile(path)
	if err != nil {
		return nil, nil, err
	}
	handler = newFanoutHandler(handler, newJSONHandler(file, level, caller))
	return slog.New(handler), file.Close, nil
}

// NewFromConfig applies the [logging] section and tees to <log_dir>/mediasort.log
// when a log directory is configured.
func NewFromConfig(cfg *config.Config, w io.Writer) (*slog.Logger, func() error, error) {
	if cfg == nil {
		return New(Options{Writer: w})
	}
	opts := Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Writer: w}
	if cfg.Paths.LogDir != "" {
		opts.FilePath = filepath.Join(cfg.Paths.LogDir, LogFileName)
	}
	return New(opts)
}

func parseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}
