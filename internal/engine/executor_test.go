package engine

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/xlbatch/internal/recipe"
	"github.com/klytics/xlbatch/internal/workbook"
)

// newFixture writes a small workbook and returns its path.
func newFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for cell, v := range map[string]any{"A1": "a", "B1": "b", "A2": 1, "B2": 2} {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SetCellFormula("Sheet1", "C2", "A2+B2"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func openFixture(t *testing.T) *workbook.Workbook {
	t.Helper()
	wb, err := workbook.Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestExecuteSuccess(t *testing.T) {
	wb := openFixture(t)
	exec := NewExecutor()

	result := exec.Execute(wb, 1, recipe.Step{Op: recipe.OpConvertFormulas})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.Step != 1 || result.Op != recipe.OpConvertFormulas {
		t.Errorf("unexpected result metadata: %+v", result)
	}
	if !strings.Contains(result.Message, "converted 1 formula(s)") {
		t.Errorf("expected conversion detail in %q", result.Message)
	}
}

func TestExecuteUnknownOp(t *testing.T) {
	wb := openFixture(t)
	exec := NewExecutor()

	result := exec.Execute(wb, 2, recipe.Step{Op: "explode"})
	if result.Success {
		t.Fatal("expected failure for unknown operation")
	}
	if !strings.Contains(result.Message, "unknown operation") {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestExecuteMissingSheetFails(t *testing.T) {
	wb := openFixture(t)
	exec := NewExecutor()

	result := exec.Execute(wb, 1, recipe.Step{Op: recipe.OpHideRows, Position: "1", Sheet: "Nope"})
	if result.Success {
		t.Fatal("expected failure for missing sheet")
	}
	if !strings.Contains(result.Message, "does not exist") {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestExecuteUnmergeRangeNotMerged(t *testing.T) {
	wb := openFixture(t)
	exec := NewExecutor()

	result := exec.Execute(wb, 1, recipe.Step{Op: recipe.OpUnmergeRange, Range: "A1:B2"})
	if result.Success {
		t.Fatal("expected failure when nothing in the range is merged")
	}
	if !strings.Contains(result.Message, "not merged") {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestExecuteMergeReportsDiscarded(t *testing.T) {
	wb := openFixture(t)
	exec := NewExecutor()

	result := exec.Execute(wb, 1, recipe.Step{Op: recipe.OpMergeCells, Range: "A1:B1"})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if !strings.Contains(result.Message, "Sheet1!B1") {
		t.Errorf("expected discarded cell in message, got %q", result.Message)
	}
}

func TestExecuteEveryCatalogOpRegistered(t *testing.T) {
	exec := NewExecutor()
	for _, info := range recipe.Ops() {
		if _, ok := exec.ops[info.Name]; !ok {
			t.Errorf("operation %s has no executor registration", info.Name)
		}
	}
}
