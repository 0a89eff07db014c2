package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.xlsx"))
	touch(t, filepath.Join(dir, "b.xlsx"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "~$a.xlsx"))
	touch(t, filepath.Join(dir, "a.bak.xlsx"))
	touch(t, filepath.Join(dir, "sub", "c.xlsx"))

	files, err := Resolve([]string{dir}, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 workbooks (no recursion, no lock/backup files), got %v", files)
	}
}

func TestResolveRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.xlsx"))
	touch(t, filepath.Join(dir, "sub", "c.xlsx"))
	touch(t, filepath.Join(dir, ".hidden", "d.xlsx"))

	files, err := Resolve([]string{dir}, true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 workbooks (hidden dirs skipped), got %v", files)
	}
}

func TestResolveGlob(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "q1.xlsx"))
	touch(t, filepath.Join(dir, "q2.xlsx"))
	touch(t, filepath.Join(dir, "other.csv"))

	files, err := Resolve([]string{filepath.Join(dir, "q*.xlsx")}, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 matches, got %v", files)
	}
}

func TestResolvePlainPath(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, filepath.Join(dir, "one.xlsx"))

	files, err := Resolve([]string{path}, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Fatalf("expected [%s], got %v", path, files)
	}
}

func TestResolveDeduplicatesAndSorts(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, filepath.Join(dir, "b.xlsx"))
	a := touch(t, filepath.Join(dir, "a.xlsx"))

	files, err := Resolve([]string{b, a, b}, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(files) != 2 || files[0] != a || files[1] != b {
		t.Fatalf("expected sorted unique [%s %s], got %v", a, b, files)
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := Resolve([]string{filepath.Join(t.TempDir(), "missing.xlsx")}, false); err == nil {
		t.Error("expected error for missing path")
	}

	dir := t.TempDir()
	notXlsx := touch(t, filepath.Join(dir, "data.csv"))
	if _, err := Resolve([]string{notXlsx}, false); err == nil {
		t.Error("expected error for non-xlsx file")
	}

	empty := t.TempDir()
	if _, err := Resolve([]string{empty}, false); err == nil {
		t.Error("expected error when nothing matches")
	}
}
