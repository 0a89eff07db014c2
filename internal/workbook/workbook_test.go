package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// newFixture writes a small workbook to a temp dir and returns its path.
// Sheet1 holds a 3×3 grid: A1..C1 = a,b,c / A2..C2 = 1,2,3 / A3..C3 = x,y,z.
func newFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	grid := [][]any{
		{"a", "b", "c"},
		{1, 2, 3},
		{"x", "y", "z"},
	}
	for ri, row := range grid {
		for ci, v := range row {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("fixture setup failed: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("could not save fixture: %v", err)
	}
	return path
}

// cellValue reads one cell from an open workbook, failing the test on error.
func cellValue(t *testing.T, wb *Workbook, sheet, cell string) string {
	t.Helper()
	v, err := wb.f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("could not read %s!%s: %v", sheet, cell, err)
	}
	return v
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpenInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected error for invalid .xlsx content")
	}
}

func TestSelectSheets(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if err := wb.AddSheet("Extra"); err != nil {
		t.Fatalf("AddSheet failed: %v", err)
	}

	// Nothing selected means every sheet.
	sheets, err := wb.SelectSheets(nil, "")
	if err != nil {
		t.Fatalf("SelectSheets failed: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(sheets))
	}

	// By 0-based index.
	sheets, err = wb.SelectSheets([]int{1}, "")
	if err != nil {
		t.Fatalf("SelectSheets failed: %v", err)
	}
	if len(sheets) != 1 || sheets[0] != "Extra" {
		t.Errorf("expected [Extra], got %v", sheets)
	}

	// By name.
	sheets, err = wb.SelectSheets(nil, "Sheet1")
	if err != nil {
		t.Fatalf("SelectSheets failed: %v", err)
	}
	if len(sheets) != 1 || sheets[0] != "Sheet1" {
		t.Errorf("expected [Sheet1], got %v", sheets)
	}

	if _, err := wb.SelectSheets([]int{5}, ""); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := wb.SelectSheets(nil, "Missing"); err == nil {
		t.Error("expected error for unknown sheet name")
	}
}

func TestBackupSibling(t *testing.T) {
	src := newFixture(t)

	dst, err := Backup(src, "")
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if filepath.Base(dst) != "fixture.bak.xlsx" {
		t.Errorf("expected fixture.bak.xlsx, got %s", filepath.Base(dst))
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
}

func TestBackupIntoDir(t *testing.T) {
	src := newFixture(t)
	dir := filepath.Join(t.TempDir(), "backups")

	dst, err := Backup(src, dir)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if filepath.Dir(dst) != dir {
		t.Errorf("expected backup under %s, got %s", dir, dst)
	}
	if filepath.Base(dst) != "fixture.xlsx" {
		t.Errorf("expected original name in backup dir, got %s", filepath.Base(dst))
	}
}

func TestAddAndDeleteSheet(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if err := wb.AddSheet("Data"); err != nil {
		t.Fatalf("AddSheet failed: %v", err)
	}
	if err := wb.AddSheet("Data"); err == nil {
		t.Error("expected error for duplicate sheet name")
	}

	if err := wb.DeleteSheet("Data"); err != nil {
		t.Fatalf("DeleteSheet failed: %v", err)
	}
	if err := wb.DeleteSheet("Data"); err == nil {
		t.Error("expected error for missing sheet")
	}
	if err := wb.DeleteSheet("Sheet1"); err == nil {
		t.Error("expected error deleting the only sheet")
	}
}
