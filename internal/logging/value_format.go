package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format(consoleTimeLayout)
}

// attrString is the unquoted text of v, used for header fields.
func attrString(v slog.Value) string {
	v = v.Resolve()
	if err, ok := v.Any().(error); ok && v.Kind() == slog.KindAny {
		return err.Error()
	}
	if v.Kind() == slog.KindTime {
		return formatTimestamp(v.Time())
	}
	return v.String()
}

// formatValueForKey renders a field value. Keys ending in _bytes print in
// binary units and strings with spaces or control characters are quoted.
func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindInt64:
		if strings.HasSuffix(key, "_bytes") {
			return humanBytes(v.Int64())
		}
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindString, slog.KindAny:
		s := attrString(v)
		if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r < ' ' || r == '"' }) {
			return strconv.Quote(s)
		}
		return s
	}
	return attrString(v)
}

func humanBytes(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}
	f := float64(n)
	units := "KMGTPE"
	i := -1
	for f >= 1024 && i < len(units)-1 {
		f /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %ciB", f, units[i])
}

var labelCaser = cases.Title(language.Und)

var fixedLabels = map[string]string{
	FieldEventType: "Event",
	FieldErrorHint: "Hint",
	FieldImpact:    "Impact",
	FieldRunID:     "Run",
}

// displayLabel turns "size_bytes" into "Size Bytes".
func displayLabel(key string) string {
	if label, ok := fixedLabels[key]; ok {
		return label
	}
	return labelCaser.String(strings.NewReplacer("_", " ", ".", " ").Replace(key))
}
