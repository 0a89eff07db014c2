package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Position inputs come from spreadsheet users who often type full-width
// punctuation; normalize it before parsing.
func normalizePunct(s string) string {
	s = strings.ReplaceAll(s, "，", ",")
	s = strings.ReplaceAll(s, "：", ":")
	return strings.TrimSpace(s)
}

// Span is an inclusive 1-based row or column interval.
type Span struct {
	Start int
	End   int
}

// Count returns the number of rows or columns covered by the span.
func (s Span) Count() int { return s.End - s.Start + 1 }

// ParseRows parses a row position list such as "3", "1,4", or "2,5:8".
// Full-width commas and colons are accepted.
func ParseRows(input string) ([]Span, error) {
	input = normalizePunct(input)
	if input == "" {
		return nil, fmt.Errorf("row position is empty")
	}

	var spans []Span
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		start, end := part, part
		if i := strings.Index(part, ":"); i >= 0 {
			start, end = strings.TrimSpace(part[:i]), strings.TrimSpace(part[i+1:])
		}

		from, err := strconv.Atoi(start)
		if err != nil {
			return nil, fmt.Errorf("row %q is not a number", start)
		}
		to, err := strconv.Atoi(end)
		if err != nil {
			return nil, fmt.Errorf("row %q is not a number", end)
		}
		if from < 1 {
			return nil, fmt.Errorf("row numbers start at 1, got %d", from)
		}
		if from > to {
			return nil, fmt.Errorf("row span %q runs backwards", part)
		}
		spans = append(spans, Span{Start: from, End: to})
	}
	return spans, nil
}

// ParseColumns parses a column position list such as "B", "A,C", or "B,D:F".
// Returns 1-based column indexes.
func ParseColumns(input string) ([]Span, error) {
	input = normalizePunct(input)
	if input == "" {
		return nil, fmt.Errorf("column position is empty")
	}

	var spans []Span
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		start, end := part, part
		if i := strings.Index(part, ":"); i >= 0 {
			start, end = strings.TrimSpace(part[:i]), strings.TrimSpace(part[i+1:])
		}

		from, err := excelize.ColumnNameToNumber(start)
		if err != nil {
			return nil, fmt.Errorf("column %q is not a valid column letter", start)
		}
		to, err := excelize.ColumnNameToNumber(end)
		if err != nil {
			return nil, fmt.Errorf("column %q is not a valid column letter", end)
		}
		if from > to {
			return nil, fmt.Errorf("column span %q runs backwards", part)
		}
		spans = append(spans, Span{Start: from, End: to})
	}
	return spans, nil
}

// CellRange is an inclusive rectangular cell region with 1-based coordinates.
type CellRange struct {
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// String renders the range in A1 notation ("B2" for single cells, "A1:C3" otherwise).
func (r CellRange) String() string {
	start, _ := excelize.CoordinatesToCellName(r.StartCol, r.StartRow)
	if r.StartCol == r.EndCol && r.StartRow == r.EndRow {
		return start
	}
	end, _ := excelize.CoordinatesToCellName(r.EndCol, r.EndRow)
	return start + ":" + end
}

// Intersects reports whether two ranges share at least one cell.
func (r CellRange) Intersects(o CellRange) bool {
	if r.EndCol < o.StartCol || r.StartCol > o.EndCol {
		return false
	}
	if r.EndRow < o.StartRow || r.StartRow > o.EndRow {
		return false
	}
	return true
}

// Contains reports whether the 1-based cell coordinates fall inside the range.
func (r CellRange) Contains(col, row int) bool {
	return col >= r.StartCol && col <= r.EndCol && row >= r.StartRow && row <= r.EndRow
}

// ParseCellRange parses a single "A1" or "A1:B5" reference.
func ParseCellRange(ref string) (CellRange, error) {
	ref = normalizePunct(ref)
	start, end := ref, ref
	if i := strings.Index(ref, ":"); i >= 0 {
		start, end = strings.TrimSpace(ref[:i]), strings.TrimSpace(ref[i+1:])
	}

	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return CellRange{}, fmt.Errorf("invalid cell reference %q", start)
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return CellRange{}, fmt.Errorf("invalid cell reference %q", end)
	}

	return CellRange{
		StartCol: min(c1, c2),
		StartRow: min(r1, r2),
		EndCol:   max(c1, c2),
		EndRow:   max(r1, r2),
	}, nil
}

// ParseCellRanges parses a comma-separated range list such as "A1:B5,D3,F1:F9".
func ParseCellRanges(input string) ([]CellRange, error) {
	input = normalizePunct(input)
	if input == "" {
		return nil, fmt.Errorf("cell range is empty")
	}

	var ranges []CellRange
	for _, part := range strings.Split(input, ",") {
		r, err := ParseCellRange(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
