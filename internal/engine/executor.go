// Package engine runs recipe steps against workbooks: the Executor
// dispatches one step, the Processor drives the files × steps batch loop.
package engine

import (
	"fmt"
	"strings"

	"github.com/klytics/xlbatch/internal/recipe"
	"github.com/klytics/xlbatch/internal/workbook"
)

// StepResult is the outcome of one step applied to one file.
type StepResult struct {
	File        string `json:"file"`
	Step        int    `json:"step"`
	Op          string `json:"op"`
	Description string `json:"description"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
}

// OpFunc applies one step to an open workbook and returns an optional detail
// string for the success message.
type OpFunc func(wb *workbook.Workbook, step recipe.Step) (string, error)

// Executor dispatches steps to the matching workbook operation.
type Executor struct {
	ops map[string]OpFunc
}

// NewExecutor returns an executor with every catalog operation registered.
func NewExecutor() *Executor {
	e := &Executor{ops: make(map[string]OpFunc)}

	e.register(recipe.OpConvertFormulas, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		n, err := wb.ConvertFormulas(sheets)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("converted %d formula(s)", n), nil
	})

	e.register(recipe.OpMergeCells, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		discarded, err := wb.Merge(sheets, s.Range)
		if err != nil {
			return "", err
		}
		if len(discarded) == 0 {
			return "", nil
		}
		shown := discarded
		if len(shown) > 5 {
			shown = shown[:5]
		}
		return fmt.Sprintf("kept top-left value only; discarded values in %s (%d cell(s))",
			strings.Join(shown, ", "), len(discarded)), nil
	})

	e.register(recipe.OpUnmergeAll, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		n, err := wb.UnmergeAll(sheets, s.Action == recipe.ActionKeepValue)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("split %d merged region(s)", n), nil
	})

	e.register(recipe.OpUnmergeRange, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		n, err := wb.UnmergeRange(sheets, s.Range, s.Action == recipe.ActionKeepValue)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", fmt.Errorf("range %s is not merged — nothing to split", s.Range)
		}
		return fmt.Sprintf("split %d merged region(s)", n), nil
	})

	e.register(recipe.OpAddSheet, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		return "", wb.AddSheet(s.Sheet)
	})
	e.register(recipe.OpDeleteSheet, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		return "", wb.DeleteSheet(s.Sheet)
	})

	e.register(recipe.OpInsertRows, e.rowOp(func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error {
		return wb.InsertRows(sheets, spans)
	}))
	e.register(recipe.OpDeleteRows, e.rowOp(func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error {
		return wb.DeleteRows(sheets, spans, workbook.MergeMode(s.MergeMode))
	}))
	e.register(recipe.OpHideRows, e.rowOp(func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error {
		return wb.HideRows(sheets, spans)
	}))
	e.register(recipe.OpUnhideRows, e.rowOp(func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error {
		return wb.UnhideRows(sheets, spans)
	}))

	e.register(recipe.OpInsertCols, e.colOp(func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error {
		return wb.InsertCols(sheets, spans)
	}))
	e.register(recipe.OpDeleteCols, e.colOp(func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error {
		return wb.DeleteCols(sheets, spans, workbook.MergeMode(s.MergeMode))
	}))
	e.register(recipe.OpHideCols, e.colOp(func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error {
		return wb.HideCols(sheets, spans)
	}))
	e.register(recipe.OpUnhideCols, e.colOp(func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error {
		return wb.UnhideCols(sheets, spans)
	}))

	e.register(recipe.OpDeleteHiddenRows, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		n, err := wb.DeleteHiddenRows(sheets)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("removed %d hidden row(s)", n), nil
	})
	e.register(recipe.OpDeleteHiddenCols, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		n, err := wb.DeleteHiddenCols(sheets)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("removed %d hidden column(s)", n), nil
	})

	e.register(recipe.OpSetFontColor, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		return "", wb.SetFontColor(sheets, s.Range, s.Color)
	})
	e.register(recipe.OpSetFillColor, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		return "", wb.SetFillColor(sheets, s.Range, s.Color)
	})
	e.register(recipe.OpAddBorder, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		return "", wb.AddBorder(sheets, s.Range)
	})
	e.register(recipe.OpClearBorder, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		return "", wb.ClearBorder(sheets, s.Range)
	})
	e.register(recipe.OpSetCellValue, func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		return "", wb.SetCellValue(sheets, s.Range, s.Content)
	})

	return e
}

func (e *Executor) register(op string, fn OpFunc) {
	e.ops[op] = fn
}

type spanOp func(wb *workbook.Workbook, sheets []string, spans []workbook.Span, s recipe.Step) error

func (e *Executor) rowOp(apply spanOp) OpFunc {
	return func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		spans, err := workbook.ParseRows(s.Position)
		if err != nil {
			return "", err
		}
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		return "", apply(wb, sheets, spans, s)
	}
}

func (e *Executor) colOp(apply spanOp) OpFunc {
	return func(wb *workbook.Workbook, s recipe.Step) (string, error) {
		spans, err := workbook.ParseColumns(s.Position)
		if err != nil {
			return "", err
		}
		sheets, err := wb.SelectSheets(s.Sheets, s.Sheet)
		if err != nil {
			return "", err
		}
		return "", apply(wb, sheets, spans, s)
	}
}

// Execute runs one step against an open workbook. Unknown operations and
// panics inside an operation become failure results, never crashes.
func (e *Executor) Execute(wb *workbook.Workbook, index int, step recipe.Step) (result StepResult) {
	result = StepResult{
		File:        wb.Path(),
		Step:        index,
		Op:          step.Op,
		Description: step.Describe(),
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Message = fmt.Sprintf("step %d: %s failed: %v", index, result.Description, r)
		}
	}()

	fn, ok := e.ops[step.Op]
	if !ok {
		result.Message = fmt.Sprintf("step %d: %s failed: unknown operation %q", index, result.Description, step.Op)
		return result
	}

	detail, err := fn(wb, step)
	if err != nil {
		result.Message = fmt.Sprintf("step %d: %s failed: %v", index, result.Description, err)
		return result
	}

	result.Success = true
	result.Message = fmt.Sprintf("step %d: %s succeeded", index, result.Description)
	if detail != "" {
		result.Message += " — " + detail
	}
	return result
}
