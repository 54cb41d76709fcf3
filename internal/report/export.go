package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"keyout/internal/converter"
)

const (
	summarySheet  = "Summary"
	failuresSheet = "Failures"
)

// Export writes r to path, choosing the format from the extension.
func Export(path string, r converter.Report) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return writeJSON(path, r)
	case ".xlsx":
		return writeXLSX(path, r)
	default:
		return fmt.Errorf("unsupported report format %q: use .json or .xlsx", ext)
	}
}

func writeJSON(path string, r converter.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeXLSX(path string, r converter.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	summary := [][]any{
		{"Job", r.JobID.String()},
		{"Source folder", r.SourceDir},
		{"Output folder", r.OutputDir},
		{"Key color", r.KeyColor},
		{"Total candidates", r.TotalCandidates},
		{"Converted", r.Succeeded},
		{"Failed", len(r.Failed)},
		{"Not processed", r.Remaining},
		{"Pixels keyed", r.KeyedPixels},
		{"Bytes written", r.BytesWritten},
		{"Started", r.Started.Format(time.RFC3339)},
		{"Finished", r.Finished.Format(time.RFC3339)},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 18)
	_ = f.SetColWidth(summarySheet, "B", "B", 48)

	if _, err := f.NewSheet(failuresSheet); err != nil {
		return err
	}
	rows := [][]any{{"File", "Status", "Size (bytes)", "Header", "Detail", "Source path"}}
	for _, o := range r.Failed {
		rows = append(rows, []any{
			o.Name,
			o.Status.String(),
			o.Size,
			fmt.Sprintf("% x", o.Header),
			o.Detail,
			o.SourcePath,
		})
	}
	if err := writeRows(f, failuresSheet, rows); err != nil {
		return err
	}
	_ = f.SetColWidth(failuresSheet, "A", "A", 24)
	_ = f.SetColWidth(failuresSheet, "B", "B", 20)
	_ = f.SetColWidth(failuresSheet, "E", "E", 60)

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
