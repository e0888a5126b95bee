package deps

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank command status %#v", results[2])
	}
}

func TestVerifyReportsMissingRequiredOnly(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	statuses, err := Verify([]Requirement{
		{Name: "FFprobe", Command: "ffprobe", Package: "ffmpeg"},
		{Name: "Extra", Command: "extra-tool", Optional: true},
	})
	if !errors.Is(err, ErrMissingDependencies) {
		t.Fatalf("expected ErrMissingDependencies, got %v", err)
	}
	if !strings.Contains(err.Error(), "ffprobe") || strings.Contains(err.Error(), "extra-tool") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if missing := Missing(statuses); len(missing) != 1 || missing[0].Name != "FFprobe" {
		t.Fatalf("unexpected missing list %#v", missing)
	}
}

func TestVerifyAllPresent(t *testing.T) {
	binDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(binDir, "file"), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", binDir)

	if _, err := Verify([]Requirement{{Name: "file", Command: "file"}}); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestInstallHintByFamily(t *testing.T) {
	missing := []Status{
		{Requirement: Requirement{Command: "ffprobe", Package: "ffmpeg"}},
		{Requirement: Requirement{Command: "file", Package: "file"}},
	}

	linux := InstallHint("linux", missing)
	if !strings.Contains(linux, "apt install ffmpeg file") {
		t.Fatalf("unexpected linux hint %q", linux)
	}
	darwin := InstallHint("darwin", missing)
	if !strings.Contains(darwin, "brew install ffmpeg file") {
		t.Fatalf("unexpected unix hint %q", darwin)
	}
	other := InstallHint("plan9", missing)
	if !strings.Contains(other, "ffmpeg and file") || strings.Contains(other, "brew") {
		t.Fatalf("unexpected fallback hint %q", other)
	}
	if InstallHint("linux", nil) != "" {
		t.Fatal("expected empty hint when nothing is missing")
	}
}

func TestInstallHintFallsBackToCommand(t *testing.T) {
	hint := InstallHint("freebsd", []Status{
		{Requirement: Requirement{Command: "ffprobe"}},
		{Requirement: Requirement{Command: "ffprobe"}},
	})
	if strings.Count(hint, "ffprobe") != 2 {
		t.Fatalf("expected deduplicated package list, got %q", hint)
	}
}

func TestFamily(t *testing.T) {
	cases := map[string]OSFamily{
		"linux":   FamilyLinux,
		"darwin":  FamilyUnix,
		"openbsd": FamilyUnix,
		"windows": FamilyUnknown,
		"js":      FamilyUnknown,
	}
	for goos, want := range cases {
		if got := Family(goos); got != want {
			t.Errorf("Family(%q) = %q, want %q", goos, got, want)
		}
	}
}
