package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mediasort/internal/classify"
	"mediasort/internal/organizer"
)

var labelCaser = cases.Title(language.Und)

// categoryLabel turns a category name such as "no_extension" into a table label.
func categoryLabel(c classify.Category) string {
	if c == classify.CategoryPDF {
		return "PDF"
	}
	return labelCaser.String(strings.ReplaceAll(c.String(), "_", " "))
}

func renderSummary(summary organizer.Summary, colorize bool) string {
	var b strings.Builder

	b.WriteString(verdictLine("Result", summaryKind(summary), summaryHeadline(summary), colorize))
	b.WriteString("\n")

	rows := make([]countRow, 0, len(classify.Categories))
	for _, c := range classify.Categories {
		count := summary.CategoryCount(c)
		if count == 0 {
			continue
		}
		rows = append(rows, countRow{categoryLabel(c), strconv.Itoa(count)})
	}
	if len(rows) > 0 {
		b.WriteString(renderCounts("Files by category", "Category", "Files", rows, colorize))
		b.WriteString("\n")
	}

	moved := "Moved"
	if summary.DryRun {
		moved = "Planned"
	}
	totals := []countRow{
		{"Scanned", strconv.Itoa(summary.Scanned)},
		{moved, strconv.Itoa(summary.Moved + summary.Planned)},
		{"Already sorted", strconv.Itoa(summary.Duplicates)},
		{"Failed", strconv.Itoa(summary.Failed)},
		{"Verification failed", strconv.Itoa(summary.VerificationFailed)},
		{"Unreadable paths", strconv.Itoa(summary.Unreadable)},
		{"Directories created", strconv.Itoa(summary.DirectoriesCreated)},
		{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
	}
	b.WriteString(renderCounts("Totals", "Metric", "Value", totals, colorize))
	return b.String()
}

func summaryKind(summary organizer.Summary) verdict {
	switch {
	case summary.VerificationFailed > 0:
		return verdictFailed
	case summary.Failed > 0 || summary.Unreadable > 0 || summary.Interrupted:
		return verdictDegraded
	default:
		return verdictOK
	}
}

func summaryHeadline(summary organizer.Summary) string {
	var headline string
	switch {
	case summary.Scanned == 0:
		headline = "nothing to sort"
	case summary.DryRun:
		headline = fmt.Sprintf("dry run: %d of %d files would be moved", summary.Planned, summary.Scanned)
	default:
		headline = fmt.Sprintf("%d of %d files sorted", summary.Moved, summary.Scanned)
	}
	if problems := summary.Problems(); problems > 0 {
		headline += fmt.Sprintf(", %d left in place", problems)
	}
	if summary.Interrupted {
		headline += " (interrupted)"
	}
	return headline + " [run " + summary.RunID + "]"
}
