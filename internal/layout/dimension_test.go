package layout

import "testing"

func TestDimension_Resolve(t *testing.T) {
	type tc struct {
		dim       Dimension
		available int
		measured  int
		expected  int
	}

	tests := map[string]tc{
		"fixed ignores available": {
			dim:       Fixed(12),
			available: 80,
			expected:  12,
		},
		"bare fill takes everything": {
			dim:       Fill(),
			available: 80,
			expected:  80,
		},
		"fill with offset": {
			dim:       Fill().WithOffset(-2),
			available: 80,
			expected:  78,
		},
		"ratio rounds": {
			dim:       FillRatio(0.33),
			available: 10,
			expected:  3,
		},
		"shrink uses measurement": {
			dim:       Shrink(),
			available: 80,
			measured:  7,
			expected:  7,
		},
		"shrink with offset": {
			dim:       Shrink().WithOffset(2),
			available: 80,
			measured:  7,
			expected:  9,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.dim.Resolve(tt.available, tt.measured); got != tt.expected {
				t.Errorf("Resolve(%d, %d) = %d, want %d", tt.available, tt.measured, got, tt.expected)
			}
		})
	}
}

func TestDimension_IsFlexible(t *testing.T) {
	if !Fill().IsFlexible() {
		t.Error("Fill() should be flexible")
	}
	if !Fill().WithOffset(3).IsFlexible() {
		t.Error("Fill() with offset should stay flexible")
	}
	if FillRatio(0.5).IsFlexible() {
		t.Error("FillRatio(0.5) should not be flexible")
	}
	if Fixed(3).IsFlexible() || Shrink().IsFlexible() {
		t.Error("Fixed and Shrink should not be flexible")
	}
}

func TestParseDimension(t *testing.T) {
	type tc struct {
		input    string
		expected Dimension
		wantErr  bool
	}

	tests := map[string]tc{
		"integer":         {input: "12", expected: Fixed(12)},
		"fill":            {input: "fill", expected: Fill()},
		"fill plus":       {input: "fill+2", expected: Fill().WithOffset(2)},
		"fill minus":      {input: "fill-3", expected: Fill().WithOffset(-3)},
		"shrink":          {input: "shrink", expected: Shrink()},
		"shrink minus":    {input: "shrink-1", expected: Shrink().WithOffset(-1)},
		"unknown word":    {input: "grow", wantErr: true},
		"missing sign":    {input: "fill2", wantErr: true},
		"non-int offset":  {input: "fill+x", wantErr: true},
		"trailing spaces": {input: " shrink ", expected: Shrink()},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDimension(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDimension(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDimension(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDimension(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDimension_String(t *testing.T) {
	tests := map[string]struct {
		dim      Dimension
		expected string
	}{
		"fixed":        {dim: Fixed(4), expected: "4"},
		"fill":         {dim: Fill(), expected: "fill"},
		"fill offset":  {dim: Fill().WithOffset(2), expected: "fill+2"},
		"shrink minus": {dim: Shrink().WithOffset(-1), expected: "shrink-1"},
		"ratio":        {dim: FillRatio(0.5), expected: "0.5"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.dim.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
