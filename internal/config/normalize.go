package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTools()
	c.normalizeClassify()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	c.Tools.File = strings.TrimSpace(c.Tools.File)
	if c.Tools.File == "" {
		c.Tools.File = defaultFileBinary
	}
}

func (c *Config) normalizeClassify() {
	c.Classify.MimeDetector = strings.ToLower(strings.TrimSpace(c.Classify.MimeDetector))
	if c.Classify.MimeDetector == "" {
		c.Classify.MimeDetector = defaultMimeDetector
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LockDir) == "" {
		c.Paths.LockDir = defaultLockDir()
	}
	if c.Paths.LockDir, err = expandPath(strings.TrimSpace(c.Paths.LockDir)); err != nil {
		return fmt.Errorf("paths.lock_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
}
