package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mediasort/internal/config"
	"mediasort/internal/deps"
	"mediasort/internal/logging"
	"mediasort/internal/organizer"
	"mediasort/internal/preflight"
	"mediasort/internal/runlock"
)

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, _, _, err := config.Load(strings.TrimSpace(opts.configPath))
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if format := strings.ToLower(strings.TrimSpace(opts.logFormat)); format != "" {
		cfg.Logging.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSort(cmd *cobra.Command, opts *rootOptions, dir string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	statuses, err := preflight.CheckTools(cfg)
	if err != nil {
		reportMissingTools(stderr, statuses, isTerminal(stderr))
		return err
	}

	root, err := preflight.CheckRoot(dir)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.NewFromConfig(cfg, stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(stderr, "close log file: %v\n", err)
		}
	}()

	lock, err := runlock.Acquire(cfg.LockPath(root))
	if err != nil {
		if errors.Is(err, runlock.ErrLocked) {
			return fmt.Errorf("%s is already being sorted by another mediasort process", root)
		}
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logging.WarnWithContext(logger, "failed to release run lock", "lock_release_failed",
				logging.String("lock", lock.Path()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "the lock is freed when the process exits"),
				logging.String(logging.FieldImpact, "none"),
			)
		}
	}()

	org := organizer.NewFromConfig(cfg, logger, organizer.Options{
		DryRun: opts.dryRun,
		RunID:  uuid.NewString(),
	})
	summary, runErr := org.Run(cmd.Context(), root)

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	} else {
		fmt.Fprintln(out, renderSummary(summary, isTerminal(out)))
	}
	return runErr
}

func reportMissingTools(w io.Writer, statuses []deps.Status, colorize bool) {
	fmt.Fprintln(w, heading("External tools", colorize))
	for _, status := range statuses {
		if status.Available {
			fmt.Fprintln(w, verdictLine(status.Name, verdictOK, status.Path, colorize))
			continue
		}
		fmt.Fprintln(w, verdictLine(status.Name, verdictMissing, status.Detail, colorize))
	}
	if hint := deps.InstallHint(runtime.GOOS, deps.Missing(statuses)); hint != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, hint)
	}
}
