// Package scan lists the files under a root that still need sorting.
package scan

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"mediasort/internal/layout"
)

// Candidate is a regular file found under the scan root.
type Candidate struct {
	Path string
	Rel  string
	Size int64
}

// SkipFunc is called for each entry that could not be read. The walk
// continues past it.
type SkipFunc func(path string, err error)

// Option configures Walk.
type Option func(*walker)

// WithSkipHandler registers fn to receive unreadable entries.
func WithSkipHandler(fn SkipFunc) Option {
	return func(w *walker) { w.onSkip = fn }
}

type walker struct {
	root   string
	onSkip SkipFunc
}

// Walk returns every regular file under root, ordered by relative path.
// Symlinks and other non-regular entries are ignored, as are the output
// branches that layout writes into. Only a failure to read root itself or
// a cancelled ctx stops the walk.
func Walk(ctx context.Context, root string, opts ...Option) ([]Candidate, error) {
	w := &walker{root: filepath.Clean(root)}
	for _, opt := range opts {
		opt(w)
	}

	files := make([]Candidate, 0, 64)
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == w.root {
				return walkErr
			}
			w.skip(path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if layout.IsOutputPath(w.root, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			w.skip(path, err)
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		files = append(files, Candidate{Path: path, Rel: rel, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	return files, nil
}

func (w *walker) skip(path string, err error) {
	if w.onSkip != nil {
		w.onSkip(path, err)
	}
}
