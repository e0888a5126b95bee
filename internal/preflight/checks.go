package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotDirectory is returned when the scan root is missing or not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNoAccess is returned when the root cannot be read, written and traversed.
	ErrNoAccess = errors.New("insufficient permissions")
)

// CheckRoot resolves path to an absolute directory that the current user
// may read, write and traverse. Symlinks are resolved so the lock and the
// output tree refer to the real location.
func CheckRoot(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("scan root: %w", ErrNotDirectory)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s does not exist: %w", abs, ErrNotDirectory)
	}
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", abs, err)
	}
	if err := checkUsableDir(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

// checkUsableDir requires dir to be a directory with rwx access for the
// effective user.
func checkUsableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%s: %w (%v)", dir, ErrNoAccess, err)
	}
	return nil
}
