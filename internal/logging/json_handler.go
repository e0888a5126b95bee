package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
)

// jsonTimestampLayout is RFC 3339 in UTC with millisecond precision.
const jsonTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// newJSONHandler writes one object per line with keys ts, level, msg and,
// when enabled, caller ("file.go:42").
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: rewriteJSONAttr,
	})
}

func rewriteJSONAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("ts", a.Value.Time().UTC().Format(jsonTimestampLayout))
	case slog.LevelKey:
		return slog.String(slog.LevelKey, strings.ToLower(a.Value.String()))
	case slog.SourceKey:
		src, ok := a.Value.Any().(*slog.Source)
		if !ok || src == nil {
			return a
		}
		return slog.String("caller", filepath.Base(src.File)+":"+strconv.Itoa(src.Line))
	}
	return a
}
