package testsupport

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestDispatchStubAnswersBySuffix(t *testing.T) {
	dir := t.TempDir()
	bin := StubFile(t, dir, map[string]string{
		".gz":     "application/gzip",
		".tar.gz": "application/x-tar",
		".md":     "text/markdown",
	})

	run := func(name string) (string, error) {
		out, err := exec.Command(bin, "--brief", "--mime-type", "--", filepath.Join(dir, name)).Output()
		return strings.TrimSpace(string(out)), err
	}

	if got, err := run("notes.md"); err != nil || got != "text/markdown" {
		t.Fatalf("notes.md = %q, %v", got, err)
	}
	if got, err := run("bundle.tar.gz"); err != nil || got != "application/x-tar" {
		t.Fatalf("bundle.tar.gz = %q, %v", got, err)
	}
	if _, err := run("unknown.bin"); err == nil {
		t.Fatal("expected failure for unmatched suffix")
	}
}

func TestNewConfigUsesTempDirs(t *testing.T) {
	cfg := NewConfig(t, WithBuiltinDetector(), WithLogDir())
	if cfg.UsesFileCommand() {
		t.Fatal("expected builtin detector")
	}
	base := BaseDir(cfg)
	if cfg.Paths.LogDir != filepath.Join(base, "logs") {
		t.Fatalf("unexpected log dir %q", cfg.Paths.LogDir)
	}
}
