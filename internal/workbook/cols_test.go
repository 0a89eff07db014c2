package workbook

import "testing"

func TestInsertColsShiftsData(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseColumns("B")
	if err := wb.InsertCols([]string{"Sheet1"}, spans); err != nil {
		t.Fatalf("InsertCols failed: %v", err)
	}

	if v := cellValue(t, wb, "Sheet1", "B1"); v != "" {
		t.Errorf("expected inserted column B to be blank, got %q", v)
	}
	if v := cellValue(t, wb, "Sheet1", "C1"); v != "b" {
		t.Errorf("expected old column B at C, got %q", v)
	}
}

func TestDeleteCols(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseColumns("A:B")
	if err := wb.DeleteCols([]string{"Sheet1"}, spans, MergeIgnore); err != nil {
		t.Fatalf("DeleteCols failed: %v", err)
	}

	if v := cellValue(t, wb, "Sheet1", "A1"); v != "c" {
		t.Errorf("expected column C to move to A, got %q", v)
	}
}

func TestDeleteColsUnmergeOnlyClearsValues(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if _, err := wb.Merge([]string{"Sheet1"}, "A1:C1"); err != nil {
		t.Fatal(err)
	}

	spans, _ := ParseColumns("B")
	if err := wb.DeleteCols([]string{"Sheet1"}, spans, MergeUnmergeOnly); err != nil {
		t.Fatalf("DeleteCols failed: %v", err)
	}

	ranges, _, err := wb.mergedRanges("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 0 {
		t.Errorf("expected merge split before deletion, got %v", ranges)
	}
	// unmerge_only clears the region's values.
	if v := cellValue(t, wb, "Sheet1", "A1"); v != "" {
		t.Errorf("expected A1 cleared, got %q", v)
	}
}

func TestHideAndDeleteHiddenCols(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseColumns("B")
	if err := wb.HideCols([]string{"Sheet1"}, spans); err != nil {
		t.Fatalf("HideCols failed: %v", err)
	}

	n, err := wb.DeleteHiddenCols([]string{"Sheet1"})
	if err != nil {
		t.Fatalf("DeleteHiddenCols failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 hidden column removed, got %d", n)
	}
	if v := cellValue(t, wb, "Sheet1", "B1"); v != "c" {
		t.Errorf("expected column C to move left, got %q", v)
	}
}

func TestUnhideCols(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseColumns("A:C")
	if err := wb.HideCols([]string{"Sheet1"}, spans); err != nil {
		t.Fatal(err)
	}
	if err := wb.UnhideCols([]string{"Sheet1"}, spans); err != nil {
		t.Fatalf("UnhideCols failed: %v", err)
	}

	n, err := wb.DeleteHiddenCols([]string{"Sheet1"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected no hidden columns after unhide, got %d removed", n)
	}
}
