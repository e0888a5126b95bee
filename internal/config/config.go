package config

import (
	_ "embed"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// MIME detector identifiers accepted by classify.mime_detector.
const (
	DetectorFile    = "file"
	DetectorBuiltin = "builtin"
)

// Tools names the external executables mediasort shells out to.
type Tools struct {
	FFprobe string `toml:"ffprobe"`
	File    string `toml:"file"`
}

// Classify selects how file content is typed.
type Classify struct {
	MimeDetector string `toml:"mime_detector"`
}

// Paths contains directories used outside the tree being sorted.
type Paths struct {
	LogDir  string `toml:"log_dir"`
	LockDir string `toml:"lock_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mediasort.
//
// Configuration sections:
//   - Tools: ffprobe and file executables
//   - Classify: MIME detector selection (file command or builtin sniffer)
//   - Paths: optional log directory and the run lock directory
//   - Logging: log format and level
type Config struct {
	Tools    Tools    `toml:"tools"`
	Classify Classify `toml:"classify"`
	Paths    Paths    `toml:"paths"`
	Logging  Logging  `toml:"logging"`
}

// Load reads the TOML file at path, or the first of
// ~/.config/mediasort/config.toml and ./mediasort.toml when path is empty.
// A missing file yields defaults. It returns the config, the file it
// considered, and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	cfg.applyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

// decodeFile rejects unknown keys so typos surface instead of silently
// falling back to defaults.
func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func locate(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		isFile, err := regularFile(expanded)
		if err != nil {
			return "", false, err
		}
		return expanded, isFile, nil
	}

	home, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	project, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{home, project} {
		if ok, _ := regularFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return home, false, nil
}

// regularFile reports whether path exists; a directory is an error.
func regularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// applyEnv lets MEDIASORT_LOG_LEVEL and MEDIASORT_FFPROBE override the file.
func (c *Config) applyEnv() {
	for name, field := range map[string]*string{
		"MEDIASORT_LOG_LEVEL": &c.Logging.Level,
		"MEDIASORT_FFPROBE":   &c.Tools.FFprobe,
	} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*field = v
		}
	}
}

// UsesFileCommand reports whether MIME detection shells out to the file utility.
func (c *Config) UsesFileCommand() bool {
	return c.Classify.MimeDetector == DetectorFile
}

// LockPath returns the lock file guarding runs over root.
func (c *Config) LockPath(root string) string {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(filepath.Clean(root)))
	return filepath.Join(c.Paths.LockDir, fmt.Sprintf("root-%016x.lock", hash.Sum64()))
}

// expandPath resolves a leading ~ and makes p absolute. Empty stays empty.
func expandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", expanded, err)
	}
	return abs, nil
}

func defaultLockDir() string {
	if base, ok := os.LookupEnv("XDG_RUNTIME_DIR"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "mediasort")
	}
	return filepath.Join(os.TempDir(), "mediasort")
}

// SampleConfig returns the annotated sample configuration shipped with the binary.
func SampleConfig() string {
	return sampleConfig
}
