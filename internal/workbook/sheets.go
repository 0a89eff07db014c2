package workbook

import "fmt"

// AddSheet creates a new worksheet. Duplicate names are an error.
func (w *Workbook) AddSheet(name string) error {
	if name == "" {
		return fmt.Errorf("sheet name is empty")
	}
	for _, s := range w.f.GetSheetList() {
		if s == name {
			return fmt.Errorf("sheet %q already exists", name)
		}
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", name, err)
	}
	return nil
}

// DeleteSheet removes a worksheet. Deleting a missing sheet or the workbook's
// only sheet is an error.
func (w *Workbook) DeleteSheet(name string) error {
	if name == "" {
		return fmt.Errorf("sheet name is empty")
	}

	all := w.f.GetSheetList()
	found := false
	for _, s := range all {
		if s == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("sheet %q does not exist — available sheets: %v", name, all)
	}
	if len(all) == 1 {
		return fmt.Errorf("sheet %q is the only sheet in the workbook and cannot be deleted", name)
	}

	if err := w.f.DeleteSheet(name); err != nil {
		return fmt.Errorf("could not delete sheet %q: %w", name, err)
	}
	return nil
}
