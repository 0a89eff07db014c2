package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// MergeMode controls how merged cells intersecting a deleted row/column band
// are handled before the deletion runs.
type MergeMode string

const (
	// MergeIgnore leaves merged cells alone.
	MergeIgnore MergeMode = "ignore"
	// MergeUnmergeOnly splits intersecting merges and clears their values.
	MergeUnmergeOnly MergeMode = "unmerge_only"
	// MergeUnmergeKeepValue splits intersecting merges and copies the
	// top-left value into every cell of the former region.
	MergeUnmergeKeepValue MergeMode = "unmerge_keep_value"
)

// Merge merges the given range on each sheet. As in Excel, only the top-left
// value survives; the references of discarded non-empty cells are returned so
// the caller can surface them.
func (w *Workbook) Merge(sheets []string, ref string) ([]string, error) {
	target, err := ParseCellRange(ref)
	if err != nil {
		return nil, err
	}

	var discarded []string
	for _, sheet := range sheets {
		topLeft, err := excelize.CoordinatesToCellName(target.StartCol, target.StartRow)
		if err != nil {
			return nil, err
		}
		topLeftValue, err := w.f.GetCellValue(sheet, topLeft)
		if err != nil {
			return nil, fmt.Errorf("could not read %s!%s: %w", sheet, topLeft, err)
		}

		for row := target.StartRow; row <= target.EndRow; row++ {
			for col := target.StartCol; col <= target.EndCol; col++ {
				if row == target.StartRow && col == target.StartCol {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(col, row)
				v, err := w.f.GetCellValue(sheet, cell)
				if err != nil {
					return nil, fmt.Errorf("could not read %s!%s: %w", sheet, cell, err)
				}
				if v != "" {
					discarded = append(discarded, fmt.Sprintf("%s!%s", sheet, cell))
				}
			}
		}

		end, _ := excelize.CoordinatesToCellName(target.EndCol, target.EndRow)
		if err := w.f.MergeCell(sheet, topLeft, end); err != nil {
			return nil, fmt.Errorf("could not merge %s on sheet %q: %w", ref, sheet, err)
		}
		if err := w.f.SetCellValue(sheet, topLeft, topLeftValue); err != nil {
			return nil, err
		}
	}

	return discarded, nil
}

// UnmergeAll splits every merged region on the given sheets. With keepValue
// the top-left value is copied into each cell of the former region.
// Returns the number of regions split.
func (w *Workbook) UnmergeAll(sheets []string, keepValue bool) (int, error) {
	split := 0
	for _, sheet := range sheets {
		ranges, _, err := w.mergedRanges(sheet)
		if err != nil {
			return split, err
		}
		for _, r := range ranges {
			if err := w.unmerge(sheet, r, keepValue); err != nil {
				return split, err
			}
			split++
		}
	}
	return split, nil
}

// UnmergeRange splits every merged region that intersects ref on the given
// sheets. Returns the number of regions split; zero means nothing in the
// range was merged.
func (w *Workbook) UnmergeRange(sheets []string, ref string, keepValue bool) (int, error) {
	target, err := ParseCellRange(ref)
	if err != nil {
		return 0, err
	}

	split := 0
	for _, sheet := range sheets {
		ranges, _, err := w.mergedRanges(sheet)
		if err != nil {
			return split, err
		}
		for _, r := range ranges {
			if !r.Intersects(target) {
				continue
			}
			if err := w.unmerge(sheet, r, keepValue); err != nil {
				return split, err
			}
			split++
		}
	}
	return split, nil
}

func (w *Workbook) unmerge(sheet string, r CellRange, keepValue bool) error {
	topLeft, _ := excelize.CoordinatesToCellName(r.StartCol, r.StartRow)
	end, _ := excelize.CoordinatesToCellName(r.EndCol, r.EndRow)

	var value string
	if keepValue {
		v, err := w.f.GetCellValue(sheet, topLeft)
		if err != nil {
			return fmt.Errorf("could not read %s!%s: %w", sheet, topLeft, err)
		}
		value = v
	}

	if err := w.f.UnmergeCell(sheet, topLeft, end); err != nil {
		return fmt.Errorf("could not unmerge %s:%s on sheet %q: %w", topLeft, end, sheet, err)
	}

	if keepValue && value != "" {
		for row := r.StartRow; row <= r.EndRow; row++ {
			for col := r.StartCol; col <= r.EndCol; col++ {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				if err := w.setTypedValue(sheet, cell, value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// unmergeIntersecting applies the merge mode to every merged region that
// intersects the band about to be deleted.
func (w *Workbook) unmergeIntersecting(sheet string, band CellRange, mode MergeMode) error {
	if mode == MergeIgnore || mode == "" {
		return nil
	}

	ranges, _, err := w.mergedRanges(sheet)
	if err != nil {
		return err
	}

	for _, r := range ranges {
		if !r.Intersects(band) {
			continue
		}
		if err := w.unmerge(sheet, r, mode == MergeUnmergeKeepValue); err != nil {
			return err
		}
		if mode == MergeUnmergeOnly {
			for row := r.StartRow; row <= r.EndRow; row++ {
				for col := r.StartCol; col <= r.EndCol; col++ {
					cell, _ := excelize.CoordinatesToCellName(col, row)
					if err := w.f.SetCellValue(sheet, cell, nil); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
