// Package logging assembles the structured slog loggers used across mediasort.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so per-file code can tag log
// lines with the run identifier and the file being processed. When a log
// directory is configured, records are teed to a JSON log file alongside the
// console output. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
