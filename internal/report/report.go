// Package report writes run reports: a plain-text summary and a styled
// .xlsx worksheet listing every step outcome per file.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/xlbatch/internal/engine"
)

// WriteText writes a plain-text report of the run and returns its path.
// Generation never depends on the run having succeeded: failed and
// successful steps are both listed.
func WriteText(summary *engine.Summary, dir, name string) (string, error) {
	if name == "" {
		name = "xlbatch-report.txt"
	}
	path := filepath.Join(dir, name)

	var b strings.Builder
	fmt.Fprintf(&b, "xlbatch run report — %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%d file(s) × %d step(s): %d succeeded, %d failed\n\n",
		summary.Files, summary.Steps, summary.Succeeded, summary.Failed)

	byFile := groupByFile(summary.Results)
	for _, file := range fileOrder(summary.Results) {
		fmt.Fprintf(&b, "%s\n", file)
		for _, r := range byFile[file] {
			mark := "ok  "
			if !r.Success {
				mark = "FAIL"
			}
			fmt.Fprintf(&b, "  [%s] step %d  %-30s %s\n", mark, r.Step, r.Description, engine.CleanMessage(r.Message))
		}
		b.WriteString("\n")
	}

	if len(summary.FileErrors) > 0 {
		b.WriteString("file errors:\n")
		for _, fe := range summary.FileErrors {
			fmt.Fprintf(&b, "  %s (%s): %s\n", fe.File, fe.Stage, fe.Message)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create report directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("could not write report %s: %w", path, err)
	}
	return path, nil
}

// WriteExcel writes the styled .xlsx report and returns its path.
func WriteExcel(summary *engine.Summary, dir, name string) (string, error) {
	if name == "" {
		name = "xlbatch-report.xlsx"
	}
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Run Report"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return "", err
	}

	widths := []float64{32, 8, 30, 10, 60}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return "", err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return "", err
	}
	okStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C6EFCE"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return "", err
	}
	failStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return "", err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return "", err
	}

	headers := []string{"File", "Step", "Operation", "Result", "Details"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return "", err
		}
	}

	for i, r := range summary.Results {
		row := i + 2
		values := []any{filepath.Base(r.File), r.Step, r.Description, "ok", engine.CleanMessage(r.Message)}
		if !r.Success {
			values[3] = "failed"
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
			style := cellStyle
			if j == 3 {
				style = okStyle
				if !r.Success {
					style = failStyle
				}
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return "", err
			}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create report directory %s: %w", dir, err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("could not save report %s: %w", path, err)
	}
	return path, nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}

func groupByFile(results []engine.StepResult) map[string][]engine.StepResult {
	m := make(map[string][]engine.StepResult)
	for _, r := range results {
		m[r.File] = append(m[r.File], r)
	}
	return m
}

func fileOrder(results []engine.StepResult) []string {
	var order []string
	seen := make(map[string]bool)
	for _, r := range results {
		if !seen[r.File] {
			seen[r.File] = true
			order = append(order, r.File)
		}
	}
	return order
}
