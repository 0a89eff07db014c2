package progress

import "testing"

func TestIncrementClampsAtTotal(t *testing.T) {
	b := &Bar{Total: 2, Width: 10}
	b.Increment("one")
	b.Increment("two")
	b.Increment("overflow")

	if b.Current != 2 {
		t.Errorf("expected current clamped at 2, got %d", b.Current)
	}
}

func TestDisabledByEnv(t *testing.T) {
	t.Setenv("XLBATCH_NO_PROGRESS", "1")

	b := New("test", 5)
	if b.Enabled {
		t.Error("expected bar disabled when XLBATCH_NO_PROGRESS=1")
	}
	// Rendering a disabled bar must be a no-op, not a crash.
	b.Increment("step")
	b.Finish("done")
}

func TestSetLabel(t *testing.T) {
	b := &Bar{Total: 1, Width: 10}
	b.SetLabel("file.xlsx")
	if b.Label != "file.xlsx" {
		t.Errorf("expected label file.xlsx, got %q", b.Label)
	}
}
