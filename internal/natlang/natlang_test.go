package natlang

import "testing"

func TestRewrite(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 plus 2", "1 + 2"},
		{"1plus 2", "1+ 2"},
		{"3 minus 1 plus 2", "3 - 1 + 2"},
		{"8 divide 2", "8 / 2"},
		{"7 module 2", "7 % 2"},
		{"1 exact 1", "1 == 1"},
		{"VAR x equal 5", "VAR x equal 5"},
		{"5 equal 5", "5 = 5"},
		{"1 not-equal 2", "1 != 2"},
		{"1 less-than 2", "1 < 2"},
		{"1 greater-than 2", "1 > 2"},
		{"1 less-than-equal 2", "1 <= 2"},
		{"2.5 greater-than-equal 2", "2.5 >= 2"},
		{"x1 plus 2", "x1 plus 2"},
		{"1 plusminus 2", "1 plusminus 2"},
		{"VAR plus = 1", "VAR plus = 1"},
		{"1 plus\n2 minus 1", "1 +\n2 - 1"},
		{"", ""},
	}

	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := p.Rewrite(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
