package recipe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/klytics/xlbatch/internal/workbook"
)

// Operation kinds.
const (
	OpConvertFormulas  = "convert_formulas"
	OpMergeCells       = "merge_cells"
	OpUnmergeAll       = "unmerge_all"
	OpUnmergeRange     = "unmerge_range"
	OpAddSheet         = "add_sheet"
	OpDeleteSheet      = "delete_sheet"
	OpInsertRows       = "insert_rows"
	OpDeleteRows       = "delete_rows"
	OpHideRows         = "hide_rows"
	OpUnhideRows       = "unhide_rows"
	OpDeleteHiddenRows = "delete_hidden_rows"
	OpInsertCols       = "insert_cols"
	OpDeleteCols       = "delete_cols"
	OpHideCols         = "hide_cols"
	OpUnhideCols       = "unhide_cols"
	OpDeleteHiddenCols = "delete_hidden_cols"
	OpSetFontColor     = "set_font_color"
	OpSetFillColor     = "set_fill_color"
	OpAddBorder        = "add_border"
	OpClearBorder      = "clear_border"
	OpSetCellValue     = "set_cell_value"
)

// Unmerge actions.
const (
	ActionUnmerge   = "unmerge"
	ActionKeepValue = "keep_value"
)

// OpInfo describes one catalog entry.
type OpInfo struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Params  string `json:"params"`
}

// catalog holds every supported operation with its parameter contract.
var catalog = map[string]OpInfo{
	OpConvertFormulas:  {OpConvertFormulas, "Replace formulas with their computed values", "sheets?"},
	OpMergeCells:       {OpMergeCells, "Merge a cell range, keeping the top-left value", "range, sheets?"},
	OpUnmergeAll:       {OpUnmergeAll, "Split every merged region", "action? (unmerge|keep_value), sheets?"},
	OpUnmergeRange:     {OpUnmergeRange, "Split merged regions intersecting a range", "range, action?, sheets?"},
	OpAddSheet:         {OpAddSheet, "Create a new worksheet", "sheet"},
	OpDeleteSheet:      {OpDeleteSheet, "Delete a worksheet", "sheet"},
	OpInsertRows:       {OpInsertRows, "Insert blank rows", "position (e.g. 2,5:7), sheets?"},
	OpDeleteRows:       {OpDeleteRows, "Delete rows", "position, merge_mode?, sheets?"},
	OpHideRows:         {OpHideRows, "Hide rows", "position, sheets?"},
	OpUnhideRows:       {OpUnhideRows, "Unhide rows", "position, sheets?"},
	OpDeleteHiddenRows: {OpDeleteHiddenRows, "Delete every hidden row", "sheets?"},
	OpInsertCols:       {OpInsertCols, "Insert blank columns", "position (e.g. B,D:F), sheets?"},
	OpDeleteCols:       {OpDeleteCols, "Delete columns", "position, merge_mode?, sheets?"},
	OpHideCols:         {OpHideCols, "Hide columns", "position, sheets?"},
	OpUnhideCols:       {OpUnhideCols, "Unhide columns", "position, sheets?"},
	OpDeleteHiddenCols: {OpDeleteHiddenCols, "Delete every hidden column", "sheets?"},
	OpSetFontColor:     {OpSetFontColor, "Change font color", "color, range? (empty = whole sheet), sheets?"},
	OpSetFillColor:     {OpSetFillColor, "Change fill color", "color, range?, sheets?"},
	OpAddBorder:        {OpAddBorder, "Draw thin borders around cells", "range, sheets?"},
	OpClearBorder:      {OpClearBorder, "Remove cell borders", "range, sheets?"},
	OpSetCellValue:     {OpSetCellValue, "Write a value into cells", "range, content, sheets?"},
}

// Ops returns the catalog entries sorted by name.
func Ops() []OpInfo {
	infos := make([]OpInfo, 0, len(catalog))
	for _, info := range catalog {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// LookupOp returns the catalog entry for an operation name.
func LookupOp(name string) (OpInfo, bool) {
	info, ok := catalog[name]
	return info, ok
}

// ValidateStep checks a single step's operation and parameters without
// touching any workbook.
func ValidateStep(s Step) error {
	if s.Op == "" {
		return fmt.Errorf("step is missing an 'op' field")
	}
	if _, ok := catalog[s.Op]; !ok {
		return fmt.Errorf("unknown operation %q — run 'xlbatch ops list' for the catalog", s.Op)
	}

	for _, idx := range s.Sheets {
		if idx < 0 {
			return fmt.Errorf("sheet index %d is negative", idx)
		}
	}

	switch s.Op {
	case OpMergeCells, OpUnmergeRange, OpAddBorder, OpClearBorder:
		if s.Range == "" {
			return fmt.Errorf("%s requires a 'range'", s.Op)
		}
		if _, err := workbook.ParseCellRanges(s.Range); err != nil {
			return err
		}
	case OpInsertRows, OpDeleteRows, OpHideRows, OpUnhideRows:
		if _, err := workbook.ParseRows(s.Position); err != nil {
			return err
		}
	case OpInsertCols, OpDeleteCols, OpHideCols, OpUnhideCols:
		if _, err := workbook.ParseColumns(s.Position); err != nil {
			return err
		}
	case OpAddSheet, OpDeleteSheet:
		if s.Sheet == "" {
			return fmt.Errorf("%s requires a 'sheet' name", s.Op)
		}
	case OpSetFontColor, OpSetFillColor:
		if _, err := workbook.ResolveColor(s.Color); err != nil {
			return err
		}
		if s.Range != "" {
			if _, err := workbook.ParseCellRanges(s.Range); err != nil {
				return err
			}
		}
	case OpSetCellValue:
		if s.Range == "" {
			return fmt.Errorf("%s requires a 'range'", s.Op)
		}
		if _, err := workbook.ParseCellRanges(s.Range); err != nil {
			return err
		}
	}

	if s.Action != "" && s.Action != ActionUnmerge && s.Action != ActionKeepValue {
		return fmt.Errorf("invalid action %q — use %s or %s", s.Action, ActionUnmerge, ActionKeepValue)
	}

	switch workbook.MergeMode(s.MergeMode) {
	case "", workbook.MergeIgnore, workbook.MergeUnmergeOnly, workbook.MergeUnmergeKeepValue:
	default:
		return fmt.Errorf("invalid merge_mode %q — use ignore, unmerge_only, or unmerge_keep_value", s.MergeMode)
	}

	return nil
}

// Describe renders the step as the human-readable description used in
// progress output and reports.
func (s Step) Describe() string {
	var details []string

	switch s.Op {
	case OpInsertRows, OpDeleteRows, OpHideRows, OpUnhideRows:
		details = append(details, "rows "+s.Position)
	case OpInsertCols, OpDeleteCols, OpHideCols, OpUnhideCols:
		details = append(details, "columns "+s.Position)
	}
	if s.Sheet != "" {
		details = append(details, "sheet "+s.Sheet)
	}
	if s.Range != "" {
		details = append(details, "range "+s.Range)
	}
	if s.Action == ActionKeepValue {
		details = append(details, "keep value")
	}
	if s.Color != "" {
		details = append(details, "color "+s.Color)
	}
	if s.Content != "" {
		content := s.Content
		if len(content) > 20 {
			content = content[:17] + "..."
		}
		details = append(details, fmt.Sprintf("content %q", content))
	}
	if s.MergeMode != "" && s.MergeMode != string(workbook.MergeIgnore) {
		details = append(details, "merges "+s.MergeMode)
	}

	name := strings.ReplaceAll(s.Op, "_", " ")
	if len(details) == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(details, ", "))
}
