package layout

import (
	"os"
	"path/filepath"
	"testing"

	"mediasort/internal/classify"
	"mediasort/internal/media/ffprobe"
)

func TestResolveTable(t *testing.T) {
	root := "/data/inbox"
	probed := &ffprobe.VideoInfo{Width: 1920, Height: 1080, FrameRate: ffprobe.FrameRate{Num: 30000, Den: 1001}}
	cases := []struct {
		name    string
		outcome classify.Outcome
		want    string
	}{
		{"probed video", classify.Outcome{Category: classify.CategoryVideo, Video: probed}, "/data/inbox/sorted/1920x1080_29.97fps"},
		{"integral fps", classify.Outcome{Category: classify.CategoryVideo, Video: &ffprobe.VideoInfo{Width: 1280, Height: 720, FrameRate: ffprobe.FrameRate{Num: 30, Den: 1}}}, "/data/inbox/sorted/1280x720_30fps"},
		{"unprobed video", classify.Outcome{Category: classify.CategoryVideo, MIME: "video/mp4"}, "/data/inbox/sorted/unknown_format"},
		{"image", classify.Outcome{Category: classify.CategoryImage, Subtype: "png"}, "/data/inbox/media/images/png"},
		{"audio", classify.Outcome{Category: classify.CategoryAudio, Subtype: "mpeg"}, "/data/inbox/media/audio/mpeg"},
		{"pdf", classify.Outcome{Category: classify.CategoryPDF}, "/data/inbox/documents/pdf"},
		{"markdown", classify.Outcome{Category: classify.CategoryText, Subtype: "markdown"}, "/data/inbox/documents/text/markdown"},
		{"other ext", classify.Outcome{Category: classify.CategoryOtherWithExt, Subtype: "zip"}, "/data/inbox/documents/other/zip"},
		{"no ext", classify.Outcome{Category: classify.CategoryOtherNoExt}, "/data/inbox/documents/other/no_extension"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(root, tc.outcome); got != tc.want {
				t.Fatalf("Resolve = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveFromClassifierOutput(t *testing.T) {
	root := t.TempDir()

	info, err := ffprobe.ParseStreamCSV("1920,1080,30000/1001")
	if err != nil {
		t.Fatalf("ParseStreamCSV: %v", err)
	}
	video := classify.FromMIME("video/mp4", "clip.mp4")
	video.Video = &info
	if got := filepath.Base(Resolve(root, video)); got != "1920x1080_29.97fps" {
		t.Fatalf("unexpected video segment %q", got)
	}

	if got := Resolve(root, classify.FromMIME("video/mp4", "clip.mp4")); got != filepath.Join(root, "sorted", "unknown_format") {
		t.Fatalf("unexpected unprobed destination %q", got)
	}
	if got := Resolve(root, classify.FromMIME("text/markdown", "README.md")); got != filepath.Join(root, "documents", "text", "markdown") {
		t.Fatalf("unexpected markdown destination %q", got)
	}
	if got := Resolve(root, classify.FromMIME("application/x-unknown-thing", "LICENSE")); got != filepath.Join(root, "documents", "other", "no_extension") {
		t.Fatalf("unexpected no-extension destination %q", got)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	outcome := classify.FromMIME("image/webp", "a.webp")
	first := Resolve("/r", outcome)
	for range 3 {
		if got := Resolve("/r", outcome); got != first {
			t.Fatalf("destination changed: %q vs %q", first, got)
		}
	}
}

func TestIsOutputPath(t *testing.T) {
	root := "/data/inbox"
	cases := map[string]bool{
		"/data/inbox/sorted/1920x1080_30fps/a.mp4": true,
		"/data/inbox/media":                        true,
		"/data/inbox/documents/other/zip/x.zip":    true,
		"/data/inbox/sorted-later/a.mp4":           false,
		"/data/inbox/raw/sorted/a.mp4":             false,
		"/data/inbox/a.mp4":                        false,
		"/data/inbox":                              false,
		"/data/elsewhere/sorted/a.mp4":             false,
	}
	for path, want := range cases {
		if got := IsOutputPath(root, path); got != want {
			t.Errorf("IsOutputPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestEnsureDirCountsEveryCreatedLevel(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "documents", "pdf")

	created, err := EnsureDir(dir)
	if err != nil || created != 2 {
		t.Fatalf("first EnsureDir = %d, %v; want 2 created", created, err)
	}
	created, err = EnsureDir(dir)
	if err != nil || created != 0 {
		t.Fatalf("second EnsureDir = %d, %v; want existing", created, err)
	}
	created, err = EnsureDir(filepath.Join(root, "documents", "text", "markdown"))
	if err != nil || created != 2 {
		t.Fatalf("sibling EnsureDir = %d, %v; want 2 created", created, err)
	}

	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := EnsureDir(file); err == nil {
		t.Fatal("expected error when a file occupies the directory path")
	}
	if _, err := EnsureDir(filepath.Join(file, "below")); err == nil {
		t.Fatal("expected error when a file occupies a parent path")
	}
}
