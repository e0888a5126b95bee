package classify

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"mediasort/internal/logging"
	"mediasort/internal/media/ffprobe"
	"mediasort/internal/media/mime"
)

// Category is the coarse type a file is sorted by.
type Category int

const (
	CategoryOtherNoExt Category = iota
	CategoryOtherWithExt
	CategoryVideo
	CategoryImage
	CategoryAudio
	CategoryPDF
	CategoryText
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryVideo,
	CategoryImage,
	CategoryAudio,
	CategoryPDF,
	CategoryText,
	CategoryOtherWithExt,
	CategoryOtherNoExt,
}

func (c Category) String() string {
	switch c {
	case CategoryVideo:
		return "video"
	case CategoryImage:
		return "image"
	case CategoryAudio:
		return "audio"
	case CategoryPDF:
		return "pdf"
	case CategoryText:
		return "text"
	case CategoryOtherWithExt:
		return "other"
	default:
		return "no_extension"
	}
}

// UnknownSubtype replaces subtypes that cannot be used as a directory name.
const UnknownSubtype = "unknown"

// Outcome is the result of classifying one file.
type Outcome struct {
	Category Category
	// Subtype is the MIME subtype for Image, Audio, and Text, and the file
	// extension (without the dot) for OtherWithExt.
	Subtype string
	// MIME is the detected type/subtype, empty when detection failed.
	MIME string
	// Video holds probe data for CategoryVideo; nil means the format is unknown.
	Video *ffprobe.VideoInfo
}

// Probed reports whether a video outcome carries resolution and frame rate.
func (o Outcome) Probed() bool {
	return o.Category == CategoryVideo && o.Video != nil
}

// Prober reads video stream metadata. ffprobe.Prober satisfies it.
type Prober interface {
	Probe(ctx context.Context, path string) (ffprobe.VideoInfo, bool)
}

// Classifier combines a MIME detector with a video prober.
type Classifier struct {
	detector mime.Detector
	prober   Prober
	logger   *slog.Logger
}

// New constructs a Classifier.
func New(detector mime.Detector, prober Prober, logger *slog.Logger) *Classifier {
	return &Classifier{
		detector: detector,
		prober:   prober,
		logger:   logging.NewComponentLogger(logger, "classify"),
	}
}

// Classify inspects path and returns its category. It never fails: detection
// and probe errors degrade to the extension rule or the unknown video format.
func (c *Classifier) Classify(ctx context.Context, path string) Outcome {
	logger := logging.WithContext(ctx, c.logger)

	mimeType, err := c.detector.Detect(ctx, path)
	if err != nil {
		logger.Debug("mime detection failed", logging.Error(err))
		mimeType = ""
	}
	mimeType = mime.Normalize(mimeType)

	outcome := FromMIME(mimeType, filepath.Base(path))
	if outcome.Category != CategoryVideo {
		return outcome
	}
	if c.prober == nil {
		return outcome
	}
	info, ok := c.prober.Probe(ctx, path)
	if !ok {
		logger.Debug("video probe returned no usable stream", logging.String("mime", mimeType))
		return outcome
	}
	outcome.Video = &info
	return outcome
}

// FromMIME applies the decision table to a detected MIME type and file name.
// MIME takes precedence; the extension is consulted only for unrecognized types.
func FromMIME(mimeType, name string) Outcome {
	mimeType = mime.Normalize(mimeType)
	major, minor := mime.Split(mimeType)
	outcome := Outcome{MIME: mimeType}

	switch {
	case major == "video" && minor != "":
		outcome.Category = CategoryVideo
	case major == "image" && minor != "":
		outcome.Category = CategoryImage
		outcome.Subtype = safeSegment(minor)
	case major == "audio" && minor != "":
		outcome.Category = CategoryAudio
		outcome.Subtype = safeSegment(minor)
	case mimeType == "application/pdf":
		outcome.Category = CategoryPDF
	case major == "text" && minor != "":
		outcome.Category = CategoryText
		outcome.Subtype = safeSegment(minor)
	default:
		if ext, ok := Extension(name); ok {
			outcome.Category = CategoryOtherWithExt
			outcome.Subtype = safeSegment(ext)
		} else {
			outcome.Category = CategoryOtherNoExt
		}
	}
	return outcome
}

// Extension returns the text after the final dot of name. Hidden files whose
// only dot is the leading one, and names ending in a dot, have no extension.
func Extension(name string) (string, bool) {
	base := filepath.Base(name)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 || idx == len(base)-1 {
		return "", false
	}
	return base[idx+1:], true
}

func safeSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "." || value == ".." || strings.ContainsAny(value, "/\\\x00") {
		return UnknownSubtype
	}
	return value
}
