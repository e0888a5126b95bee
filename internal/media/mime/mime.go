package mime

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultFileBinary is the executable FileCommand uses when none is configured.
const DefaultFileBinary = "file"

// Detector reports the MIME type of the file at path.
type Detector interface {
	Detect(ctx context.Context, path string) (string, error)
}

// FileCommand detects MIME types with the file(1) utility.
type FileCommand struct {
	Binary string
}

// Detect runs `file --brief --mime-type -- path`.
func (f FileCommand) Detect(ctx context.Context, path string) (string, error) {
	binary := strings.TrimSpace(f.Binary)
	if binary == "" {
		binary = DefaultFileBinary
	}
	cmd := exec.CommandContext(ctx, binary, "--brief", "--mime-type", "--", path)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("file --mime-type %s: %w", path, err)
	}
	mimeType := Normalize(string(output))
	if mimeType == "" {
		return "", fmt.Errorf("file --mime-type %s: empty output", path)
	}
	return mimeType, nil
}

// Sniffer detects MIME types in-process from the file's leading bytes.
type Sniffer struct{}

// Detect reads the file header and matches it against known signatures.
func (Sniffer) Detect(_ context.Context, path string) (string, error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("sniff mime type %s: %w", path, err)
	}
	return Normalize(detected.String()), nil
}

// Normalize trims whitespace, drops parameters such as "; charset=utf-8",
// and lower-cases the result.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if before, _, ok := strings.Cut(value, ";"); ok {
		value = before
	}
	return strings.ToLower(strings.TrimSpace(value))
}

// Split separates a MIME type into its top-level type and subtype. The
// subtype is empty when value has no slash.
func Split(value string) (string, string) {
	major, minor, _ := strings.Cut(Normalize(value), "/")
	return major, minor
}
