package pgrep

import "testing"

func TestNeedsLineMappingSkipsIndexerUnderCount(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want bool
	}{
		{"count full-line", Options{Count: true}, false},
		{"count only-matching", Options{Count: true, OnlyMatching: true}, false},
		{"count with line-number requested", Options{Count: true, LineNumber: true}, false},
		{"full-line without count", Options{}, true},
		{"only-matching without line-number", Options{OnlyMatching: true}, false},
		{"line-number requested", Options{OnlyMatching: true, LineNumber: true}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.opts.needsLineMapping(); got != c.want {
				t.Errorf("needsLineMapping() = %v, want %v", got, c.want)
			}
		})
	}
}
