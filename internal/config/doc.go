// Package config owns the mediasort TOML file: defaults, discovery,
// environment overrides (MEDIASORT_LOG_LEVEL, MEDIASORT_FFPROBE), path
// expansion and validation.
//
// Callers get a Config whose paths are absolute and whose enumerations
// (log format, MIME detector) are already lower-cased and checked.
package config
