package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mediasort/internal/classify"
	"mediasort/internal/layout"
	"mediasort/internal/logging"
	"mediasort/internal/scan"
	"mediasort/internal/transfer"
)

// Classifier assigns a category to a file. classify.Classifier satisfies it.
type Classifier interface {
	Classify(ctx context.Context, path string) classify.Outcome
}

// Transferer moves a file into a directory. transfer.Engine satisfies it.
type Transferer interface {
	Transfer(source, destDir string) transfer.Result
}

// Options tunes a run.
type Options struct {
	// DryRun classifies and resolves destinations without touching the tree.
	DryRun bool
	// RunID tags log records and the summary. A random id is used when empty.
	RunID string
}

// Organizer drives a single sorting run.
type Organizer struct {
	classifier Classifier
	engine     Transferer
	logger     *slog.Logger
	opts       Options
	now        func() time.Time
}

// New constructs an Organizer from its collaborators.
func New(classifier Classifier, engine Transferer, logger *slog.Logger, opts Options) *Organizer {
	return &Organizer{
		classifier: classifier,
		engine:     engine,
		logger:     logging.NewComponentLogger(logger, "organizer"),
		opts:       opts,
		now:        time.Now,
	}
}

// Run sorts every candidate under root. The returned error is non-nil only
// when root cannot be walked or ctx is cancelled; the summary is valid in
// both cases.
func (o *Organizer) Run(ctx context.Context, root string) (Summary, error) {
	runID := o.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)
	started := o.now()
	summary := newSummary(runID, root, o.opts.DryRun)

	logger.Info("sort run started",
		logging.String("root", root),
		logging.Bool("dry_run", o.opts.DryRun),
	)

	candidates, err := scan.Walk(ctx, root, scan.WithSkipHandler(func(path string, err error) {
		summary.Unreadable++
		logging.WarnWithContext(logger, "skipping unreadable path", "walk_unreadable",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the directory"),
			logging.String(logging.FieldImpact, "contents were not sorted"),
		)
	}))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			summary.Interrupted = true
			return o.finish(logger, summary, started), err
		}
		return o.finish(logger, summary, started), fmt.Errorf("walk %s: %w", root, err)
	}
	logger.Debug("walk complete", logging.Int("candidates", len(candidates)))

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}
		o.process(ctx, candidate, &summary)
	}
	// Also catches an interrupt during the last file.
	if err := ctx.Err(); err != nil {
		summary.Interrupted = true
		logging.WarnWithContext(logger, "run interrupted", "run_interrupted",
			logging.Int("remaining", len(candidates)-summary.Scanned),
			logging.String(logging.FieldErrorHint, "re-run to sort the remaining files"),
			logging.String(logging.FieldImpact, "remaining files left in place"),
		)
		return o.finish(logger, summary, started), err
	}

	return o.finish(logger, summary, started), nil
}

// process classifies and transfers one file on a context detached from run,
// so an interrupt never splits a copy/verify/delete sequence. A file whose
// classification overlapped an interrupt is left in place because its
// outcome may come from a killed probe.
func (o *Organizer) process(run context.Context, candidate scan.Candidate, summary *Summary) {
	ctx := logging.WithFile(context.WithoutCancel(run), candidate.Rel)
	logger := logging.WithContext(ctx, o.logger)

	outcome := o.classifier.Classify(ctx, candidate.Path)
	if run.Err() != nil {
		logger.Info("interrupted during classification; file left in place")
		return
	}
	summary.Scanned++
	summary.Categories[outcome.Category.String()]++
	destDir := layout.Resolve(summary.Root, outcome)

	attrs := []logging.Attr{
		logging.String("category", outcome.Category.String()),
		logging.String("mime", outcome.MIME),
		logging.String("destination", destDir),
	}
	if outcome.Probed() {
		attrs = append(attrs,
			logging.String("resolution", outcome.Video.Resolution()),
			logging.String("fps", outcome.Video.FrameRate.String()),
		)
	}

	if o.opts.DryRun {
		summary.Planned++
		logger.Info("planned move", logging.Args(attrs...)...)
		return
	}

	created, err := layout.EnsureDir(destDir)
	if err != nil {
		summary.Failed++
		logging.ErrorWithContext(logger, "cannot create destination directory", "destination_create_failed",
			append(attrs,
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check free space and permissions under the root"),
			)...,
		)
		return
	}
	if created > 0 {
		summary.DirectoriesCreated += created
		logger.Debug("created directory", logging.String("path", destDir), logging.Int("levels", created))
	}

	result := o.engine.Transfer(candidate.Path, destDir)
	switch result.Status {
	case transfer.StatusSuccess:
		summary.Moved++
		if result.Duplicate {
			summary.Duplicates++
			attrs = append(attrs, logging.Bool("duplicate", true))
		}
		logger.Info("file sorted", logging.Args(append(attrs, logging.Int64("size_bytes", candidate.Size))...)...)
	case transfer.StatusVerificationFailed:
		summary.VerificationFailed++
		logging.ErrorWithContext(logger, "copy verification failed", "verification_failed",
			append(attrs,
				logging.Error(result.Err),
				logging.String(logging.FieldErrorHint, "the copy was discarded; check the destination disk"),
			)...,
		)
	default:
		summary.Failed++
		hint := "check permissions and free space"
		if errors.Is(result.Err, transfer.ErrDestinationExists) {
			hint = "a different file with the same name is already sorted; rename one of them"
		}
		logging.WarnWithContext(logger, "file transfer failed", "transfer_failed",
			append(attrs,
				logging.Error(result.Err),
				logging.String(logging.FieldErrorHint, hint),
			)...,
		)
	}
}

func (o *Organizer) finish(logger *slog.Logger, summary Summary, started time.Time) Summary {
	summary.Elapsed = o.now().Sub(started)
	logger.Info("sort run finished",
		logging.Int("scanned", summary.Scanned),
		logging.Int("moved", summary.Moved),
		logging.Int("planned", summary.Planned),
		logging.Int("failed", summary.Failed),
		logging.Int("verification_failed", summary.VerificationFailed),
		logging.Int("directories_created", summary.DirectoriesCreated),
		logging.Bool("interrupted", summary.Interrupted),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary
}
