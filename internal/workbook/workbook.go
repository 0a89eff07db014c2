// Package workbook wraps excelize with the batch-edit operations xlbatch
// applies to .xlsx files: formula flattening, merge/unmerge, worksheet
// management, row/column edits, and cell formatting.
package workbook

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open .xlsx file. A Workbook is owned by exactly one
// goroutine for the duration of one file's processing.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open loads an .xlsx file for editing.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}

	return &Workbook{f: f, path: path}, nil
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string { return w.path }

// SaveAs writes the workbook to the given path.
func (w *Workbook) SaveAs(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// SheetNames returns the workbook's sheet names in order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// SelectSheets resolves a step's sheet selection to sheet names.
// Indexes are 0-based; a name must exist; nothing selected means every sheet.
func (w *Workbook) SelectSheets(indexes []int, name string) ([]string, error) {
	all := w.f.GetSheetList()

	if name != "" {
		for _, s := range all {
			if s == name {
				return []string{s}, nil
			}
		}
		return nil, fmt.Errorf("sheet %q does not exist — available sheets: %v", name, all)
	}

	if len(indexes) == 0 {
		return all, nil
	}

	var sheets []string
	for _, idx := range indexes {
		if idx < 0 || idx >= len(all) {
			return nil, fmt.Errorf("sheet index %d out of range — workbook has %d sheets", idx, len(all))
		}
		sheets = append(sheets, all[idx])
	}
	return sheets, nil
}

// Backup copies src to a backup location before any modification. When dir is
// empty the copy is written alongside the original as <name>.bak.xlsx.
func Backup(src, dir string) (string, error) {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".bak.xlsx"

	dst := filepath.Join(filepath.Dir(src), name)
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("could not create backup directory %s: %w", dir, err)
		}
		dst = filepath.Join(dir, base)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("could not read %s for backup: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("could not create backup %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("could not write backup %s: %w", dst, err)
	}
	return dst, nil
}

// mergedRanges returns the sheet's merged regions as parsed ranges paired
// with their original references.
func (w *Workbook) mergedRanges(sheet string) ([]CellRange, []string, error) {
	cells, err := w.f.GetMergeCells(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read merged cells on sheet %q: %w", sheet, err)
	}

	ranges := make([]CellRange, 0, len(cells))
	refs := make([]string, 0, len(cells))
	for _, mc := range cells {
		ref := mc.GetStartAxis() + ":" + mc.GetEndAxis()
		r, err := ParseCellRange(ref)
		if err != nil {
			return nil, nil, err
		}
		ranges = append(ranges, r)
		refs = append(refs, ref)
	}
	return ranges, refs, nil
}

// usedRange returns the rectangle of cells that currently hold data.
func (w *Workbook) usedRange(sheet string) (CellRange, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return CellRange{}, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}

	used := CellRange{StartCol: 1, StartRow: 1, EndCol: 1, EndRow: 1}
	for i, row := range rows {
		for j, cell := range row {
			if cell == "" {
				continue
			}
			if i+1 > used.EndRow {
				used.EndRow = i + 1
			}
			if j+1 > used.EndCol {
				used.EndCol = j + 1
			}
		}
	}
	return used, nil
}
