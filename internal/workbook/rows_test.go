package workbook

import "testing"

func TestInsertRowsShiftsData(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseRows("2")
	if err := wb.InsertRows([]string{"Sheet1"}, spans); err != nil {
		t.Fatalf("InsertRows failed: %v", err)
	}

	if v := cellValue(t, wb, "Sheet1", "A2"); v != "" {
		t.Errorf("expected inserted row 2 to be blank, got %q", v)
	}
	if v := cellValue(t, wb, "Sheet1", "A3"); v != "1" {
		t.Errorf("expected old row 2 at row 3, got %q", v)
	}
}

func TestDeleteRows(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseRows("2")
	if err := wb.DeleteRows([]string{"Sheet1"}, spans, MergeIgnore); err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}

	if v := cellValue(t, wb, "Sheet1", "A2"); v != "x" {
		t.Errorf("expected row 3 to move up to row 2, got %q", v)
	}
}

func TestInsertThenDeleteRestoresLayout(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseRows("2:3")
	if err := wb.InsertRows([]string{"Sheet1"}, spans); err != nil {
		t.Fatalf("InsertRows failed: %v", err)
	}
	if err := wb.DeleteRows([]string{"Sheet1"}, spans, MergeIgnore); err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}

	for cell, want := range map[string]string{"A1": "a", "A2": "1", "A3": "x"} {
		if v := cellValue(t, wb, "Sheet1", cell); v != want {
			t.Errorf("%s = %q, want %q", cell, v, want)
		}
	}
}

func TestDeleteRowsUnmergeKeepValue(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	// Vertical merge spanning rows 1-3 intersects the deleted band.
	if _, err := wb.Merge([]string{"Sheet1"}, "A1:A3"); err != nil {
		t.Fatal(err)
	}

	spans, _ := ParseRows("2")
	if err := wb.DeleteRows([]string{"Sheet1"}, spans, MergeUnmergeKeepValue); err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}

	ranges, _, err := wb.mergedRanges("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 0 {
		t.Errorf("expected merge to be split before deletion, got %v", ranges)
	}
	// Former region cells kept the top-left value; row 3 moved up to row 2.
	if v := cellValue(t, wb, "Sheet1", "A1"); v != "a" {
		t.Errorf("A1 = %q, want a", v)
	}
	if v := cellValue(t, wb, "Sheet1", "A2"); v != "a" {
		t.Errorf("A2 = %q, want a", v)
	}
}

func TestHideAndDeleteHiddenRows(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseRows("2")
	if err := wb.HideRows([]string{"Sheet1"}, spans); err != nil {
		t.Fatalf("HideRows failed: %v", err)
	}

	n, err := wb.DeleteHiddenRows([]string{"Sheet1"})
	if err != nil {
		t.Fatalf("DeleteHiddenRows failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 hidden row removed, got %d", n)
	}
	if v := cellValue(t, wb, "Sheet1", "A2"); v != "x" {
		t.Errorf("expected row 3 to move up, got %q", v)
	}
}

func TestUnhideRows(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseRows("1:2")
	if err := wb.HideRows([]string{"Sheet1"}, spans); err != nil {
		t.Fatal(err)
	}
	if err := wb.UnhideRows([]string{"Sheet1"}, spans); err != nil {
		t.Fatalf("UnhideRows failed: %v", err)
	}

	n, err := wb.DeleteHiddenRows([]string{"Sheet1"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected no hidden rows after unhide, got %d removed", n)
	}
}

func TestRowOpOnMissingSheet(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	spans, _ := ParseRows("1")
	if err := wb.InsertRows([]string{"NoSuchSheet"}, spans); err == nil {
		t.Error("expected error for missing sheet")
	}
}
