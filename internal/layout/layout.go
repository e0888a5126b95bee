// Package layout maps classified files to their place in the output tree.
//
// The tree has three fixed branches under the scan root: sorted/ for video,
// media/ for images and audio, and documents/ for everything else.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mediasort/internal/classify"
)

// Output branch names directly under the root.
const (
	SortedDir    = "sorted"
	MediaDir     = "media"
	DocumentsDir = "documents"
)

// Leaf directory names that do not come from a MIME type or extension.
const (
	UnknownFormatDir = "unknown_format"
	NoExtensionDir   = "no_extension"
)

// OutputRoots lists the branch names the walker must never descend into.
func OutputRoots() []string {
	return []string{SortedDir, MediaDir, DocumentsDir}
}

// Resolve returns the destination directory for outcome under root.
func Resolve(root string, outcome classify.Outcome) string {
	return filepath.Join(root, Relative(outcome))
}

// Relative returns the destination directory for outcome relative to the root.
func Relative(outcome classify.Outcome) string {
	switch outcome.Category {
	case classify.CategoryVideo:
		if outcome.Video == nil {
			return filepath.Join(SortedDir, UnknownFormatDir)
		}
		return filepath.Join(SortedDir, VideoDirName(outcome.Video.Width, outcome.Video.Height, outcome.Video.FrameRate.String()))
	case classify.CategoryImage:
		return filepath.Join(MediaDir, "images", outcome.Subtype)
	case classify.CategoryAudio:
		return filepath.Join(MediaDir, "audio", outcome.Subtype)
	case classify.CategoryPDF:
		return filepath.Join(DocumentsDir, "pdf")
	case classify.CategoryText:
		return filepath.Join(DocumentsDir, "text", outcome.Subtype)
	case classify.CategoryOtherWithExt:
		return filepath.Join(DocumentsDir, "other", outcome.Subtype)
	default:
		return filepath.Join(DocumentsDir, "other", NoExtensionDir)
	}
}

// VideoDirName renders the {width}x{height}_{fps}fps directory name.
func VideoDirName(width, height int, fps string) string {
	return fmt.Sprintf("%dx%d_%sfps", width, height, fps)
}

// IsOutputPath reports whether path lies inside one of root's output branches.
func IsOutputPath(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	for _, name := range OutputRoots() {
		if first == name {
			return true
		}
	}
	return false
}

// EnsureDir creates dir and any missing parents. It returns how many
// directories it created, zero when dir already existed.
func EnsureDir(dir string) (int, error) {
	missing := 0
	for p := filepath.Clean(dir); ; p = filepath.Dir(p) {
		info, err := os.Stat(p)
		if err == nil {
			if !info.IsDir() {
				return 0, fmt.Errorf("create directory %s: %s exists and is not a directory", dir, p)
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("stat directory %s: %w", p, err)
		}
		missing++
		if filepath.Dir(p) == p {
			break
		}
	}
	if missing == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return missing, nil
}
