package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// countRow is one label/value line of a summary table.
type countRow struct {
	label string
	value string
}

// renderCounts draws a two-column table with the values right-aligned.
func renderCounts(title, labelHeader, valueHeader string, rows []countRow, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	if colorize {
		tw.Style().Color.Header = text.Colors{text.Bold}
		tw.Style().Title.Colors = text.Colors{text.FgHiCyan}
	}
	tw.AppendHeader(table.Row{labelHeader, valueHeader})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.label, r.value})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: labelWidthFor(title, valueHeader, rows)},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignRight},
	})
	return tw.Render()
}

// labelWidthFor widens the label column so the title fits on one line.
// A rounded two-column table is w1+w2+7 wide and its title row needs
// the title plus 4; one spare column is kept.
func labelWidthFor(title, valueHeader string, rows []countRow) int {
	valueWidth := text.RuneWidthWithoutEscSequences(valueHeader)
	for _, r := range rows {
		valueWidth = max(valueWidth, text.RuneWidthWithoutEscSequences(r.value))
	}
	return max(0, text.RuneWidthWithoutEscSequences(title)-valueWidth-2)
}
