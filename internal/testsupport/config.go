package testsupport

import (
	"path/filepath"
	"testing"

	"mediasort/internal/config"
)

// ConfigOption adjusts a test configuration. base is the test's temp dir.
type ConfigOption func(t testing.TB, base string, cfg *config.Config)

// NewConfig returns defaults with the lock directory moved under a fresh
// temp dir and the log file disabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LockDir = filepath.Join(base, "locks")
	cfg.Paths.LogDir = ""
	for _, opt := range opts {
		opt(t, base, &cfg)
	}
	return &cfg
}

// WithBuiltinDetector switches MIME detection to the in-process sniffer.
func WithBuiltinDetector() ConfigOption {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.Classify.MimeDetector = config.DetectorBuiltin
	}
}

// WithLogDir enables the log file under <base>/logs.
func WithLogDir() ConfigOption {
	return func(_ testing.TB, base string, cfg *config.Config) {
		cfg.Paths.LogDir = filepath.Join(base, "logs")
	}
}

// WithStubbedTools points ffprobe and file at scripts answering from tools.
func WithStubbedTools(tools Tools) ConfigOption {
	return func(t testing.TB, base string, cfg *config.Config) {
		bin := filepath.Join(base, "bin")
		cfg.Tools.FFprobe = StubFFprobe(t, bin, tools.Probes)
		cfg.Tools.File = StubFile(t, bin, tools.MIMEs)
	}
}

// BaseDir returns the temp dir NewConfig created for cfg.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LockDir)
}
