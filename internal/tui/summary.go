package tui

import (
	"fmt"
	"strings"
	"time"

	"keyout/internal/converter"
)

type SummaryRow struct {
	Label string
	Value string
}

// ReportRows is the end-of-run table shown by convert.
func ReportRows(r converter.Report) []SummaryRow {
	rows := []SummaryRow{
		{Label: "BMP files found", Value: fmt.Sprintf("%d", r.TotalCandidates)},
		{Label: "Converted", Value: fmt.Sprintf("%d", r.Succeeded)},
		{Label: "Failed or skipped", Value: fmt.Sprintf("%d", len(r.Failed))},
	}
	if r.Cancelled {
		rows = append(rows, SummaryRow{Label: "Not processed (stopped)", Value: fmt.Sprintf("%d", r.Remaining)})
	}
	rows = append(rows,
		SummaryRow{Label: "Key color", Value: r.KeyColor},
		SummaryRow{Label: "Pixels made transparent", Value: fmt.Sprintf("%d", r.KeyedPixels)},
		SummaryRow{Label: "Bytes written", Value: fmt.Sprintf("%d", r.BytesWritten)},
		SummaryRow{Label: "Elapsed", Value: r.Elapsed().Round(time.Millisecond).String()},
	)
	return rows
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderFailures lists every file that did not convert, one per line.
func RenderFailures(failed []converter.FileOutcome) string {
	lines := make([]string, 0, len(failed))
	for _, o := range failed {
		line := fmt.Sprintf("  %s %s %s", warnStyle.Render(o.Name), dimStyle.Render(o.Status.String()), o.Detail)
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
