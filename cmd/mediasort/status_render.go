package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// verdict grades one line of terminal output: a tool check or the run result.
type verdict int

const (
	verdictOK verdict = iota
	verdictDegraded
	verdictFailed
	verdictMissing
)

var verdicts = map[verdict]struct {
	tag   string
	color text.Colors
}{
	verdictOK:       {"OK", text.Colors{text.FgGreen}},
	verdictDegraded: {"WARN", text.Colors{text.FgYellow}},
	verdictFailed:   {"FAIL", text.Colors{text.FgRed}},
	verdictMissing:  {"MISSING", text.Colors{text.FgRed}},
}

const verdictLabelWidth = 12

// verdictLine renders "  label:      [TAG] detail", colored by verdict on terminals.
func verdictLine(label string, v verdict, detail string, colorize bool) string {
	style := verdicts[v]
	tag := "[" + style.tag + "]"
	if detail != "" {
		tag += " " + detail
	}
	line := fmt.Sprintf("  %-*s %s", verdictLabelWidth, label+":", tag)
	if !colorize {
		return line
	}
	return style.color.Sprint(line)
}

// heading underlines title with dashes.
func heading(title string, colorize bool) string {
	title = strings.TrimSpace(title)
	out := title + "\n" + strings.Repeat("-", len(title))
	if colorize {
		return text.Colors{text.FgBlue, text.Bold}.Sprint(out)
	}
	return out
}

// isTerminal reports whether w is an interactive terminal worth coloring.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
