package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler prints a one-line header per record:
//
//	2026-01-02 15:04:05 WARN [organizer] clips/a.mp4 – transfer failed
//
// followed by one "    - Label: value" line per remaining attribute.
// The run ID is only shown at debug level.
type consoleHandler struct {
	out    *syncWriter
	level  *slog.LevelVar
	caller bool
	prefix string
	preset []field
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(p)
	return err
}

type field struct {
	key string
	val slog.Value
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, caller bool) slog.Handler {
	return &consoleHandler{out: &syncWriter{w: w}, level: lvl, caller: caller}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = slices.Clip(h.preset)
	for _, a := range attrs {
		next.preset = appendField(next.preset, h.prefix, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.Enabled(context.Background(), r.Level) {
		return nil
	}
	fields := slices.Clone(h.preset)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendField(fields, h.prefix, a)
		return true
	})

	var component, file string
	body := make([]field, 0, len(fields))
	for _, f := range collapse(fields) {
		switch {
		case f.key == FieldComponent:
			component = attrString(f.val)
		case f.key == FieldFile:
			file = strings.TrimSpace(attrString(f.val))
		case f.key == FieldRunID && r.Level >= slog.LevelInfo:
		default:
			body = append(body, f)
		}
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "(no message)"
	}

	var sb strings.Builder
	sb.WriteString(formatTimestamp(ts) + " " + levelLabel(r.Level))
	if component != "" {
		sb.WriteString(" [" + component + "]")
	}
	if file != "" {
		sb.WriteString(" " + file)
	}
	sb.WriteString(" – " + msg)
	if src := r.Source(); h.caller && src != nil {
		sb.WriteString(" [" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + "]")
	}
	sb.WriteByte('\n')
	for _, f := range body {
		sb.WriteString("    - " + displayLabel(f.key) + ": " + formatValueForKey(f.key, f.val) + "\n")
	}
	return h.out.write([]byte(sb.String()))
}

// appendField flattens groups into dotted keys.
func appendField(dst []field, prefix string, a slog.Attr) []field {
	if a.Equal(slog.Attr{}) {
		return dst
	}
	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		return append(dst, field{key: prefix + a.Key, val: v})
	}
	if a.Key != "" {
		prefix += a.Key + "."
	}
	for _, member := range v.Group() {
		dst = appendField(dst, prefix, member)
	}
	return dst
}

// collapse keeps the first position of each key with its last value.
func collapse(fields []field) []field {
	seen := make(map[string]int, len(fields))
	out := fields[:0:0]
	for _, f := range fields {
		if f.key == "" {
			continue
		}
		if i, ok := seen[f.key]; ok {
			out[i].val = f.val
			continue
		}
		seen[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}
