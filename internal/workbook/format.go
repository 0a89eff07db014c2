package workbook

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// colorPalette maps the color names offered in recipes to RGB hex codes.
var colorPalette = map[string]string{
	"red":    "FF0000",
	"green":  "00FF00",
	"blue":   "0000FF",
	"black":  "000000",
	"white":  "FFFFFF",
	"yellow": "FFFF00",
	"purple": "800080",
	"orange": "FFA500",
	"gray":   "808080",
}

var hexColorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// ResolveColor turns a palette name or hex code into an RGB hex string.
func ResolveColor(color string) (string, error) {
	if hex, ok := colorPalette[strings.ToLower(strings.TrimSpace(color))]; ok {
		return hex, nil
	}
	if hexColorPattern.MatchString(color) {
		return strings.ToUpper(strings.TrimPrefix(color, "#")), nil
	}
	names := make([]string, 0, len(colorPalette))
	for name := range colorPalette {
		names = append(names, name)
	}
	return "", fmt.Errorf("unknown color %q — use a hex code like FF0000 or one of: %s", color, strings.Join(names, ", "))
}

// SetFontColor changes the font color of every cell in the given ranges,
// preserving the rest of the cell's style. Empty ranges means the whole sheet.
func (w *Workbook) SetFontColor(sheets []string, ranges string, color string) error {
	hex, err := ResolveColor(color)
	if err != nil {
		return err
	}
	return w.restyle(sheets, ranges, func(style *excelize.Style) {
		if style.Font == nil {
			style.Font = &excelize.Font{}
		}
		style.Font.Color = hex
	})
}

// SetFillColor sets a solid fill on every cell in the given ranges.
// Empty ranges means the whole sheet.
func (w *Workbook) SetFillColor(sheets []string, ranges string, color string) error {
	hex, err := ResolveColor(color)
	if err != nil {
		return err
	}
	return w.restyle(sheets, ranges, func(style *excelize.Style) {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}}
	})
}

// AddBorder draws thin borders on all four sides of every cell in the ranges.
func (w *Workbook) AddBorder(sheets []string, ranges string) error {
	if ranges == "" {
		return fmt.Errorf("cell range is empty")
	}
	return w.restyle(sheets, ranges, func(style *excelize.Style) {
		style.Border = []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		}
	})
}

// ClearBorder removes all borders from every cell in the ranges.
func (w *Workbook) ClearBorder(sheets []string, ranges string) error {
	if ranges == "" {
		return fmt.Errorf("cell range is empty")
	}
	return w.restyle(sheets, ranges, func(style *excelize.Style) {
		style.Border = nil
	})
}

// SetCellValue writes content into every cell of the given ranges. A cell
// inside a merged region resolves to the region's top-left cell.
func (w *Workbook) SetCellValue(sheets []string, ranges string, content string) error {
	return w.eachCell(sheets, ranges, func(sheet string, col, row int) error {
		merged, _, err := w.mergedRanges(sheet)
		if err != nil {
			return err
		}
		for _, mr := range merged {
			if mr.Contains(col, row) {
				col, row = mr.StartCol, mr.StartRow
				break
			}
		}
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return w.setTypedValue(sheet, cell, content)
	})
}

// restyle rewrites the style of each targeted cell through mutate, keeping
// unrelated style attributes intact.
func (w *Workbook) restyle(sheets []string, ranges string, mutate func(*excelize.Style)) error {
	return w.eachCell(sheets, ranges, func(sheet string, col, row int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}

		styleID, err := w.f.GetCellStyle(sheet, cell)
		if err != nil {
			return fmt.Errorf("could not read style of %s!%s: %w", sheet, cell, err)
		}
		style, err := w.f.GetStyle(styleID)
		if err != nil || style == nil {
			style = &excelize.Style{}
		}

		mutate(style)

		newID, err := w.f.NewStyle(style)
		if err != nil {
			return fmt.Errorf("could not build style for %s!%s: %w", sheet, cell, err)
		}
		if err := w.f.SetCellStyle(sheet, cell, cell, newID); err != nil {
			return fmt.Errorf("could not apply style to %s!%s: %w", sheet, cell, err)
		}
		return nil
	})
}

// eachCell visits every cell in the parsed ranges on each sheet, skipping
// duplicates when ranges overlap. Empty ranges means the sheet's used range.
func (w *Workbook) eachCell(sheets []string, ranges string, visit func(sheet string, col, row int) error) error {
	for _, sheet := range sheets {
		var parsed []CellRange
		if ranges == "" {
			used, err := w.usedRange(sheet)
			if err != nil {
				return err
			}
			parsed = []CellRange{used}
		} else {
			var err error
			parsed, err = ParseCellRanges(ranges)
			if err != nil {
				return err
			}
		}

		seen := make(map[[2]int]bool)
		for _, r := range parsed {
			for row := r.StartRow; row <= r.EndRow; row++ {
				for col := r.StartCol; col <= r.EndCol; col++ {
					key := [2]int{col, row}
					if seen[key] {
						continue
					}
					seen[key] = true
					if err := visit(sheet, col, row); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
