package workbook

import "testing"

func TestMergeReportsDiscardedValues(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	discarded, err := wb.Merge([]string{"Sheet1"}, "A1:B2")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	// B1, A2, B2 were non-empty; A1's value survives.
	if len(discarded) != 3 {
		t.Fatalf("expected 3 discarded cells, got %d: %v", len(discarded), discarded)
	}
	if v := cellValue(t, wb, "Sheet1", "A1"); v != "a" {
		t.Errorf("expected top-left value 'a', got %q", v)
	}

	ranges, _, err := wb.mergedRanges("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 1 || ranges[0].String() != "A1:B2" {
		t.Errorf("expected one merged region A1:B2, got %v", ranges)
	}
}

func TestMergeEmptyRangeDiscardsNothing(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	discarded, err := wb.Merge([]string{"Sheet1"}, "E5:F6")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if len(discarded) != 0 {
		t.Errorf("expected no discarded cells, got %v", discarded)
	}
}

func TestUnmergeAll(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if _, err := wb.Merge([]string{"Sheet1"}, "A1:B1"); err != nil {
		t.Fatal(err)
	}
	if _, err := wb.Merge([]string{"Sheet1"}, "A3:C3"); err != nil {
		t.Fatal(err)
	}

	n, err := wb.UnmergeAll([]string{"Sheet1"}, false)
	if err != nil {
		t.Fatalf("UnmergeAll failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 regions split, got %d", n)
	}

	ranges, _, err := wb.mergedRanges("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 0 {
		t.Errorf("expected no merged regions left, got %v", ranges)
	}
}

func TestUnmergeAllKeepValueFillsRegion(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if _, err := wb.Merge([]string{"Sheet1"}, "A1:C1"); err != nil {
		t.Fatal(err)
	}

	n, err := wb.UnmergeAll([]string{"Sheet1"}, true)
	if err != nil {
		t.Fatalf("UnmergeAll failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 region split, got %d", n)
	}

	for _, cell := range []string{"A1", "B1", "C1"} {
		if v := cellValue(t, wb, "Sheet1", cell); v != "a" {
			t.Errorf("expected %s to hold 'a' after keep-value split, got %q", cell, v)
		}
	}
}

func TestUnmergeRangeIntersectingOnly(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if _, err := wb.Merge([]string{"Sheet1"}, "A1:B1"); err != nil {
		t.Fatal(err)
	}
	if _, err := wb.Merge([]string{"Sheet1"}, "A3:C3"); err != nil {
		t.Fatal(err)
	}

	// B1 touches only the first region.
	n, err := wb.UnmergeRange([]string{"Sheet1"}, "B1", false)
	if err != nil {
		t.Fatalf("UnmergeRange failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 region split, got %d", n)
	}

	ranges, _, err := wb.mergedRanges("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 1 || ranges[0].String() != "A3:C3" {
		t.Errorf("expected A3:C3 to survive, got %v", ranges)
	}
}

func TestUnmergeRangeNothingMerged(t *testing.T) {
	wb, err := Open(newFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	n, err := wb.UnmergeRange([]string{"Sheet1"}, "A1:C3", false)
	if err != nil {
		t.Fatalf("UnmergeRange failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 regions split, got %d", n)
	}
}
