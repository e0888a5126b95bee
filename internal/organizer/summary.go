package organizer

import (
	"time"

	"mediasort/internal/classify"
)

// Summary accumulates the outcome of one run.
type Summary struct {
	RunID              string         `json:"run_id"`
	Root               string         `json:"root"`
	DryRun             bool           `json:"dry_run"`
	Scanned            int            `json:"scanned"`
	Moved              int            `json:"moved"`
	Duplicates         int            `json:"duplicates"`
	Planned            int            `json:"planned"`
	Failed             int            `json:"failed"`
	VerificationFailed int            `json:"verification_failed"`
	Unreadable         int            `json:"unreadable"`
	DirectoriesCreated int            `json:"directories_created"`
	Categories         map[string]int `json:"categories"`
	Interrupted        bool           `json:"interrupted"`
	Elapsed            time.Duration  `json:"elapsed_ns"`
}

func newSummary(runID, root string, dryRun bool) Summary {
	return Summary{
		RunID:      runID,
		Root:       root,
		DryRun:     dryRun,
		Categories: make(map[string]int, len(classify.Categories)),
	}
}

// Problems is the number of files that were left in place because of an error.
func (s Summary) Problems() int {
	return s.Failed + s.VerificationFailed
}

// CategoryCount returns the number of files classified as c.
func (s Summary) CategoryCount(c classify.Category) int {
	return s.Categories[c.String()]
}
