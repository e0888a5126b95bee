package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func rels(files []Candidate) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Rel)
	}
	return out
}

func TestWalkSkipsOutputBranches(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "sorted", "1920x1080_30fps", "a.mp4"))
	touch(t, filepath.Join(root, "media", "images", "png", "b.png"))
	touch(t, filepath.Join(root, "documents", "pdf", "c.pdf"))
	touch(t, filepath.Join(root, "inbox", "sorted", "nested.txt"))
	touch(t, filepath.Join(root, "z.txt"))
	touch(t, filepath.Join(root, "a", "b.txt"))

	got, err := Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{
		filepath.Join("a", "b.txt"),
		filepath.Join("inbox", "sorted", "nested.txt"),
		"z.txt",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", rels(got), want)
	}
	for i := range want {
		if got[i].Rel != want[i] {
			t.Fatalf("got %v, want %v", rels(got), want)
		}
		if got[i].Path != filepath.Join(root, want[i]) {
			t.Fatalf("unexpected absolute path %q", got[i].Path)
		}
	}
	if got[2].Size != int64(len("z.txt")) {
		t.Fatalf("unexpected size %d", got[2].Size)
	}
}

func TestWalkIgnoresSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real.txt")
	touch(t, target)
	if err := os.Symlink(target, filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 1 || got[0].Rel != "real.txt" {
		t.Fatalf("expected only real.txt, got %v", rels(got))
	}
}

func TestWalkEmptyAfterSorting(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "documents", "other", "no_extension", "LICENSE"))

	got, err := Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", rels(got))
	}
}

func TestWalkReportsUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	touch(t, filepath.Join(locked, "hidden.txt"))
	touch(t, filepath.Join(root, "open.txt"))
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var skipped []string
	got, err := Walk(context.Background(), root, WithSkipHandler(func(path string, _ error) {
		skipped = append(skipped, path)
	}))
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 1 || got[0].Rel != "open.txt" {
		t.Fatalf("unexpected candidates %v", rels(got))
	}
	if len(skipped) != 1 || skipped[0] != locked {
		t.Fatalf("unexpected skipped %v", skipped)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWalkHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.txt"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Walk(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
