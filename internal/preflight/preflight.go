package preflight

import (
	"mediasort/internal/config"
	"mediasort/internal/deps"
)

// Requirements lists the executables needed by cfg. ffprobe is always
// required; file only when it is the configured MIME detector.
func Requirements(cfg *config.Config) []deps.Requirement {
	if cfg == nil {
		return nil
	}
	requirements := []deps.Requirement{
		{
			Name:        "FFprobe",
			Command:     cfg.Tools.FFprobe,
			Package:     "ffmpeg",
			Description: "Required for video resolution and frame rate",
		},
	}
	if cfg.UsesFileCommand() {
		requirements = append(requirements, deps.Requirement{
			Name:        "file",
			Command:     cfg.Tools.File,
			Package:     "file",
			Description: "Required for MIME type detection",
		})
	}
	return requirements
}

// CheckTools evaluates the executables required by cfg. The error wraps
// deps.ErrMissingDependencies when any are absent.
func CheckTools(cfg *config.Config) ([]deps.Status, error) {
	return deps.Verify(Requirements(cfg))
}
