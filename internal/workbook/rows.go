package workbook

import "fmt"

// InsertRows inserts blank rows at each span's start, one span at a time.
// Inserting N rows at position P shifts all rows >= P down by N.
func (w *Workbook) InsertRows(sheets []string, spans []Span) error {
	for _, sheet := range sheets {
		for _, sp := range spans {
			if err := w.f.InsertRows(sheet, sp.Start, sp.Count()); err != nil {
				return fmt.Errorf("could not insert %d row(s) at row %d on sheet %q: %w", sp.Count(), sp.Start, sheet, err)
			}
		}
	}
	return nil
}

// DeleteRows removes the rows in each span, applying mode to any merged
// regions intersecting the deleted band first.
func (w *Workbook) DeleteRows(sheets []string, spans []Span, mode MergeMode) error {
	for _, sheet := range sheets {
		for _, sp := range spans {
			used, err := w.usedRange(sheet)
			if err != nil {
				return err
			}
			band := CellRange{StartCol: 1, StartRow: sp.Start, EndCol: used.EndCol, EndRow: sp.End}
			if err := w.unmergeIntersecting(sheet, band, mode); err != nil {
				return err
			}

			for i := 0; i < sp.Count(); i++ {
				if err := w.f.RemoveRow(sheet, sp.Start); err != nil {
					return fmt.Errorf("could not delete row %d on sheet %q: %w", sp.Start, sheet, err)
				}
			}
		}
	}
	return nil
}

// HideRows hides every row in the given spans.
func (w *Workbook) HideRows(sheets []string, spans []Span) error {
	return w.setRowsVisible(sheets, spans, false)
}

// UnhideRows makes every row in the given spans visible again.
func (w *Workbook) UnhideRows(sheets []string, spans []Span) error {
	return w.setRowsVisible(sheets, spans, true)
}

func (w *Workbook) setRowsVisible(sheets []string, spans []Span, visible bool) error {
	for _, sheet := range sheets {
		for _, sp := range spans {
			for row := sp.Start; row <= sp.End; row++ {
				if err := w.f.SetRowVisible(sheet, row, visible); err != nil {
					return fmt.Errorf("could not change visibility of row %d on sheet %q: %w", row, sheet, err)
				}
			}
		}
	}
	return nil
}

// DeleteHiddenRows removes every hidden row on the given sheets, bottom-up so
// positions stay stable. Returns the number of rows removed.
func (w *Workbook) DeleteHiddenRows(sheets []string) (int, error) {
	removed := 0
	for _, sheet := range sheets {
		rows, err := w.f.GetRows(sheet)
		if err != nil {
			return removed, fmt.Errorf("could not read sheet %q: %w", sheet, err)
		}

		for row := len(rows); row >= 1; row-- {
			visible, err := w.f.GetRowVisible(sheet, row)
			if err != nil {
				return removed, fmt.Errorf("could not check visibility of row %d on sheet %q: %w", row, sheet, err)
			}
			if visible {
				continue
			}
			if err := w.f.RemoveRow(sheet, row); err != nil {
				return removed, fmt.Errorf("could not delete row %d on sheet %q: %w", row, sheet, err)
			}
			removed++
		}
	}
	return removed, nil
}
