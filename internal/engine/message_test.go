package engine

import "testing"

func TestCleanMessage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"step 1: convert formulas succeeded", "ok"},
		{"step 2: merge cells (range A1:C3) succeeded — converted 4 formula(s)", "ok — converted 4 formula(s)"},
		{"step 3: delete rows (rows 2) failed: sheet \"X\" does not exist", "failed: sheet \"X\" does not exist"},
		// Nested failure prefixes collapse to the innermost reason.
		{"step 4: merge cells failed: step 4: merge cells failed: bad range", "failed: bad range"},
		{"no prefix here", "no prefix here"},
	}
	for _, c := range cases {
		if got := CleanMessage(c.in); got != c.want {
			t.Errorf("CleanMessage(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
