package testsupport

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// Pattern returns size deterministic bytes; files of equal size written with
// it compare equal. A size below one yields a single byte.
func Pattern(size int64) []byte {
	if size < 1 {
		size = 1
	}
	seed := make([]byte, 251)
	for i := range seed {
		seed[i] = byte(i)
	}
	return bytes.Repeat(seed, int(size/251)+1)[:size]
}

// WriteFile creates path, and any missing parents, holding Pattern(size).
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()
	WriteContent(t, path, Pattern(size))
}

// WriteContent writes data to path, creating parent directories.
func WriteContent(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

// AssertMissing fails the test unless path is absent.
func AssertMissing(t testing.TB, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		t.Fatalf("%s still exists", path)
	case !errors.Is(err, fs.ErrNotExist):
		t.Fatalf("lstat %s: %v", path, err)
	}
}
