package testsupport

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Tools describes how stubbed external tools answer, keyed by file-name
// suffix (for example ".mp4"). Files matching no suffix make the stub fail.
type Tools struct {
	// Probes maps a suffix to the CSV line ffprobe prints.
	Probes map[string]string
	// MIMEs maps a suffix to the MIME type file prints.
	MIMEs map[string]string
}

// StubFFprobe writes an ffprobe stand-in into dir and returns its path.
func StubFFprobe(t testing.TB, dir string, probes map[string]string) string {
	t.Helper()
	return writeDispatchStub(t, filepath.Join(dir, "ffprobe"), probes)
}

// StubFile writes a file(1) stand-in into dir and returns its path.
func StubFile(t testing.TB, dir string, mimes map[string]string) string {
	t.Helper()
	return writeDispatchStub(t, filepath.Join(dir, "file"), mimes)
}

// WriteScript writes an executable shell script at path.
func WriteScript(t testing.TB, path, body string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}

// writeDispatchStub emits a script that answers based on the suffix of its
// last argument, which is where both tools receive the file path.
func writeDispatchStub(t testing.TB, path string, answers map[string]string) string {
	t.Helper()

	suffixes := make([]string, 0, len(answers))
	for suffix := range answers {
		suffixes = append(suffixes, suffix)
	}
	// Longest suffix first so ".tar.gz" wins over ".gz".
	sort.Slice(suffixes, func(i, j int) bool {
		if len(suffixes[i]) != len(suffixes[j]) {
			return len(suffixes[i]) > len(suffixes[j])
		}
		return suffixes[i] < suffixes[j]
	})

	var b strings.Builder
	b.WriteString("for last in \"$@\"; do :; done\n")
	b.WriteString("case \"$last\" in\n")
	for _, suffix := range suffixes {
		b.WriteString("  *" + shellQuote(suffix) + ") printf '%s\\n' " + shellQuote(answers[suffix]) + " ;;\n")
	}
	b.WriteString("  *) exit 1 ;;\n")
	b.WriteString("esac\n")
	return WriteScript(t, path, b.String())
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
