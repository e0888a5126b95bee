// Package transfer moves one file into its destination directory as a
// verified copy: the source is deleted only after the placed copy has been
// compared byte for byte against it.
package transfer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"mediasort/internal/fileutil"
)

// ErrDestinationExists reports that a different file already occupies the
// target path. Existing files are never overwritten.
var ErrDestinationExists = errors.New("destination already exists with different content")

// Status is the terminal state of one transfer.
type Status int

const (
	// StatusSuccess means the copy is verified and the source is gone.
	StatusSuccess Status = iota
	// StatusFailed means the copy or the source removal failed.
	StatusFailed
	// StatusVerificationFailed means the placed copy did not match; the
	// copy was discarded and the source kept.
	StatusVerificationFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusVerificationFailed:
		return "verification_failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result describes the outcome of a single transfer.
type Result struct {
	Status      Status
	Source      string
	Destination string
	// Duplicate is set when an identical file was already in place and
	// only the source had to be removed.
	Duplicate bool
	Err       error
}

// CopyFunc writes the bytes of src into the new file dst.
type CopyFunc func(src, dst string) error

// CompareFunc reports whether two files hold identical bytes.
type CompareFunc func(a, b string) (bool, error)

// Engine performs verified transfers. The zero value uses fileutil.
type Engine struct {
	Copy    CopyFunc
	Compare CompareFunc
}

// New returns an engine backed by fileutil.CopyFile and fileutil.FilesEqual.
func New() *Engine {
	return &Engine{Copy: fileutil.CopyFile, Compare: fileutil.FilesEqual}
}

// Target returns the path source will occupy inside destDir.
func Target(source, destDir string) string {
	return filepath.Join(destDir, filepath.Base(source))
}

// Transfer moves source into destDir. destDir must already exist.
func (e *Engine) Transfer(source, destDir string) Result {
	target := Target(source, destDir)
	result := Result{Source: source, Destination: target}

	if _, err := os.Lstat(target); err == nil {
		return e.settleExisting(result)
	} else if !errors.Is(err, os.ErrNotExist) {
		return failed(result, fmt.Errorf("stat destination: %w", err))
	}

	tmp := tempPath(target)
	if err := e.copier()(source, tmp); err != nil {
		_ = os.Remove(tmp)
		return failed(result, fmt.Errorf("copy to %s: %w", destDir, err))
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return failed(result, fmt.Errorf("place copy: %w", err))
	}

	equal, err := e.comparer()(source, target)
	if err != nil || !equal {
		if err == nil {
			err = errors.New("copy does not match source")
		}
		result.Status = StatusVerificationFailed
		result.Err = fmt.Errorf("verify copy: %w", err)
		if rmErr := os.Remove(target); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			result.Err = errors.Join(result.Err, fmt.Errorf("remove unverified copy: %w", rmErr))
		}
		return result
	}
	return removeSource(result)
}

// settleExisting handles a target that is already present. An identical
// file counts as a verified copy from an earlier, interrupted run.
func (e *Engine) settleExisting(result Result) Result {
	equal, err := e.comparer()(result.Source, result.Destination)
	if err != nil {
		return failed(result, fmt.Errorf("compare with existing destination: %w", err))
	}
	if !equal {
		return failed(result, fmt.Errorf("%s: %w", result.Destination, ErrDestinationExists))
	}
	result.Duplicate = true
	return removeSource(result)
}

func removeSource(result Result) Result {
	if err := os.Remove(result.Source); err != nil {
		return failed(result, fmt.Errorf("remove source after verified copy: %w", err))
	}
	result.Status = StatusSuccess
	return result
}

func failed(result Result, err error) Result {
	result.Status = StatusFailed
	result.Err = err
	return result
}

// tempPath names the in-flight copy next to target. The name does not embed
// the target's base name, so any name the filesystem accepts can be copied.
func tempPath(target string) string {
	return filepath.Join(filepath.Dir(target), ".mediasort-"+uuid.NewString()+".tmp")
}

func (e *Engine) copier() CopyFunc {
	if e.Copy != nil {
		return e.Copy
	}
	return fileutil.CopyFile
}

func (e *Engine) comparer() CompareFunc {
	if e.Compare != nil {
		return e.Compare
	}
	return fileutil.FilesEqual
}
