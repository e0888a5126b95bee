package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"mediasort/internal/config"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MEDIASORT_LOG_LEVEL", "")
	t.Setenv("MEDIASORT_FFPROBE", "")
	homedir.Reset()
	t.Cleanup(homedir.Reset)
	return home
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	home := isolateHome(t)
	t.Chdir(t.TempDir())
	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "mediasort", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Tools.FFprobe != "ffprobe" || cfg.Tools.File != "file" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Classify.MimeDetector != config.DetectorFile {
		t.Fatalf("expected file detector by default, got %q", cfg.Classify.MimeDetector)
	}
	if !cfg.UsesFileCommand() {
		t.Fatal("expected UsesFileCommand for default config")
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected log file disabled by default, got %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.LockDir != filepath.Join(runtimeDir, "mediasort") {
		t.Fatalf("unexpected lock dir: %q", cfg.Paths.LockDir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPathExpandsHome(t *testing.T) {
	home := isolateHome(t)

	cfgPath := filepath.Join(t.TempDir(), "mediasort.toml")
	contents := `
[tools]
ffprobe = "/opt/ffmpeg/bin/ffprobe"

[classify]
mime_detector = "Builtin"

[paths]
log_dir = "~/logs"
lock_dir = "~/locks"

[logging]
format = "JSON"
level = "warning"
`
	if err := os.WriteFile(cfgPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != cfgPath {
		t.Fatalf("expected %q to be loaded, got %q (exists=%v)", cfgPath, resolved, exists)
	}
	if cfg.Tools.FFprobe != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("unexpected ffprobe: %q", cfg.Tools.FFprobe)
	}
	if cfg.Tools.File != "file" {
		t.Fatalf("expected file default to survive partial config, got %q", cfg.Tools.File)
	}
	if cfg.Classify.MimeDetector != config.DetectorBuiltin || cfg.UsesFileCommand() {
		t.Fatalf("expected builtin detector, got %q", cfg.Classify.MimeDetector)
	}
	if cfg.Paths.LogDir != filepath.Join(home, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.LockDir != filepath.Join(home, "locks") {
		t.Fatalf("unexpected lock dir: %q", cfg.Paths.LockDir)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadMissingCustomPathFallsBackToDefaults(t *testing.T) {
	isolateHome(t)
	missing := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to be reported as absent")
	}
	if resolved != missing {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("unexpected ffprobe: %q", cfg.Tools.FFprobe)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("MEDIASORT_LOG_LEVEL", "debug")
	t.Setenv("MEDIASORT_FFPROBE", "/usr/local/bin/ffprobe")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
	if cfg.Tools.FFprobe != "/usr/local/bin/ffprobe" {
		t.Fatalf("expected env ffprobe, got %q", cfg.Tools.FFprobe)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolateHome(t)
	cases := map[string]string{
		"detector":      "[classify]\nmime_detector = \"magic\"\n",
		"format":        "[logging]\nformat = \"xml\"\n",
		"level":         "[logging]\nlevel = \"trace\"\n",
		"unknown field": "[tools]\nexiftool = \"exiftool\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestLockPathIsStablePerRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LockDir = "/run/mediasort"

	first := cfg.LockPath("/data/incoming")
	if first != cfg.LockPath("/data/incoming/") {
		t.Fatalf("expected cleaned roots to share a lock, got %q", first)
	}
	if first == cfg.LockPath("/data/other") {
		t.Fatal("expected distinct roots to use distinct locks")
	}
	if filepath.Dir(first) != "/run/mediasort" || !strings.HasSuffix(first, ".lock") {
		t.Fatalf("unexpected lock path: %q", first)
	}
}

func TestSampleConfigParses(t *testing.T) {
	var cfg config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Tools.FFprobe != "ffprobe" || cfg.Classify.MimeDetector != config.DetectorFile {
		t.Fatalf("sample config drifted from defaults: %+v", cfg)
	}
}
