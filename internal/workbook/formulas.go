package workbook

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ConvertFormulas replaces every formula on the given sheets with its value.
// Formulas are evaluated; when evaluation fails the cached cell value from
// the last save is used instead. Returns the number of cells converted.
func (w *Workbook) ConvertFormulas(sheets []string) (int, error) {
	converted := 0

	for _, sheet := range sheets {
		rows, err := w.f.GetRows(sheet)
		if err != nil {
			return converted, fmt.Errorf("could not read sheet %q: %w", sheet, err)
		}

		for ri, row := range rows {
			for ci := range row {
				cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
				if err != nil {
					return converted, err
				}

				formula, err := w.f.GetCellFormula(sheet, cell)
				if err != nil {
					return converted, fmt.Errorf("could not read formula at %s!%s: %w", sheet, cell, err)
				}
				if formula == "" {
					continue
				}

				value, err := w.f.CalcCellValue(sheet, cell)
				if err != nil {
					// Unsupported function or external reference: fall back
					// to the value cached in the file.
					value, _ = w.f.GetCellValue(sheet, cell)
				}

				if err := w.f.SetCellFormula(sheet, cell, ""); err != nil {
					return converted, fmt.Errorf("could not clear formula at %s!%s: %w", sheet, cell, err)
				}
				if err := w.setTypedValue(sheet, cell, value); err != nil {
					return converted, err
				}
				converted++
			}
		}
	}

	return converted, nil
}

// setTypedValue writes a string value, preserving numeric cell types where
// the value parses as a number.
func (w *Workbook) setTypedValue(sheet, cell, value string) error {
	if n, err := strconv.ParseFloat(value, 64); err == nil && value != "" {
		return w.f.SetCellValue(sheet, cell, n)
	}
	return w.f.SetCellValue(sheet, cell, value)
}
