package organizer

import (
	"log/slog"

	"mediasort/internal/classify"
	"mediasort/internal/config"
	"mediasort/internal/media/ffprobe"
	"mediasort/internal/media/mime"
	"mediasort/internal/transfer"
)

// NewFromConfig wires the production classifier and transfer engine.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts Options) *Organizer {
	return New(NewClassifier(cfg, logger), transfer.New(), logger, opts)
}

// NewClassifier builds the classifier selected by cfg.
func NewClassifier(cfg *config.Config, logger *slog.Logger) *classify.Classifier {
	return classify.New(NewDetector(cfg), ffprobe.New(cfg.Tools.FFprobe), logger)
}

// NewDetector returns the MIME detector named by classify.mime_detector.
func NewDetector(cfg *config.Config) mime.Detector {
	if cfg.UsesFileCommand() {
		return mime.FileCommand{Binary: cfg.Tools.File}
	}
	return mime.Sniffer{}
}
