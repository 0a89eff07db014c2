package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// InsertCols inserts blank columns at each span's start, one span at a time.
func (w *Workbook) InsertCols(sheets []string, spans []Span) error {
	for _, sheet := range sheets {
		for _, sp := range spans {
			name, err := excelize.ColumnNumberToName(sp.Start)
			if err != nil {
				return err
			}
			if err := w.f.InsertCols(sheet, name, sp.Count()); err != nil {
				return fmt.Errorf("could not insert %d column(s) at column %s on sheet %q: %w", sp.Count(), name, sheet, err)
			}
		}
	}
	return nil
}

// DeleteCols removes the columns in each span, applying mode to any merged
// regions intersecting the deleted band first.
func (w *Workbook) DeleteCols(sheets []string, spans []Span, mode MergeMode) error {
	for _, sheet := range sheets {
		for _, sp := range spans {
			used, err := w.usedRange(sheet)
			if err != nil {
				return err
			}
			band := CellRange{StartCol: sp.Start, StartRow: 1, EndCol: sp.End, EndRow: used.EndRow}
			if err := w.unmergeIntersecting(sheet, band, mode); err != nil {
				return err
			}

			name, err := excelize.ColumnNumberToName(sp.Start)
			if err != nil {
				return err
			}
			for i := 0; i < sp.Count(); i++ {
				if err := w.f.RemoveCol(sheet, name); err != nil {
					return fmt.Errorf("could not delete column %s on sheet %q: %w", name, sheet, err)
				}
			}
		}
	}
	return nil
}

// HideCols hides every column in the given spans.
func (w *Workbook) HideCols(sheets []string, spans []Span) error {
	return w.setColsVisible(sheets, spans, false)
}

// UnhideCols makes every column in the given spans visible again.
func (w *Workbook) UnhideCols(sheets []string, spans []Span) error {
	return w.setColsVisible(sheets, spans, true)
}

func (w *Workbook) setColsVisible(sheets []string, spans []Span, visible bool) error {
	for _, sheet := range sheets {
		for _, sp := range spans {
			start, err := excelize.ColumnNumberToName(sp.Start)
			if err != nil {
				return err
			}
			end, err := excelize.ColumnNumberToName(sp.End)
			if err != nil {
				return err
			}
			cols := start
			if end != start {
				cols = start + ":" + end
			}
			if err := w.f.SetColVisible(sheet, cols, visible); err != nil {
				return fmt.Errorf("could not change visibility of column(s) %s on sheet %q: %w", cols, sheet, err)
			}
		}
	}
	return nil
}

// DeleteHiddenCols removes every hidden column on the given sheets,
// right-to-left so positions stay stable. Returns the number removed.
func (w *Workbook) DeleteHiddenCols(sheets []string) (int, error) {
	removed := 0
	for _, sheet := range sheets {
		used, err := w.usedRange(sheet)
		if err != nil {
			return removed, err
		}

		for col := used.EndCol; col >= 1; col-- {
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return removed, err
			}
			visible, err := w.f.GetColVisible(sheet, name)
			if err != nil {
				return removed, fmt.Errorf("could not check visibility of column %s on sheet %q: %w", name, sheet, err)
			}
			if visible {
				continue
			}
			if err := w.f.RemoveCol(sheet, name); err != nil {
				return removed, fmt.Errorf("could not delete column %s on sheet %q: %w", name, sheet, err)
			}
			removed++
		}
	}
	return removed, nil
}
