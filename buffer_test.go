package celadon

import (
	"testing"

	"github.com/celadon-tui/celadon/internal/layout"
)

func TestNewBuffer(t *testing.T) {
	type tc struct {
		width          int
		height         int
		expectedWidth  int
		expectedHeight int
	}

	tests := map[string]tc{
		"standard size":       {width: 80, height: 24, expectedWidth: 80, expectedHeight: 24},
		"single cell":         {width: 1, height: 1, expectedWidth: 1, expectedHeight: 1},
		"zero width":          {width: 0, height: 10, expectedWidth: 0, expectedHeight: 10},
		"negative dimensions": {width: -5, height: -3, expectedWidth: 0, expectedHeight: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(tt.width, tt.height)
			w, h := b.Size()
			if w != tt.expectedWidth || h != tt.expectedHeight {
				t.Errorf("Size() = (%d, %d), want (%d, %d)", w, h, tt.expectedWidth, tt.expectedHeight)
			}
			if r := b.Rect(); r.Width != tt.expectedWidth || r.Height != tt.expectedHeight {
				t.Errorf("Rect() = %+v, want %dx%d", r, tt.expectedWidth, tt.expectedHeight)
			}
		})
	}
}

func TestBuffer_SetString(t *testing.T) {
	type tc struct {
		x, y     int
		text     string
		written  int
		expected string
	}

	tests := map[string]tc{
		"fits":              {x: 0, y: 0, text: "hello", written: 5, expected: "hello"},
		"cut at right edge": {x: 3, y: 0, text: "hello", written: 3, expected: "   hel"},
		"starts left of buffer": {
			x: -2, y: 0, text: "hello", written: 3, expected: "llo",
		},
		"row outside": {x: 0, y: 5, text: "hello", written: 0, expected: ""},
		"wide runes":  {x: 0, y: 0, text: "日本", written: 4, expected: "日本"},
		"wide rune at edge": {
			x: 5, y: 0, text: "日", written: 2, expected: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(6, 1)
			if n := b.SetString(tt.x, tt.y, tt.text, Style{}); n != tt.written {
				t.Errorf("SetString() = %d, want %d", n, tt.written)
			}
			if got := b.StringTrimmed(); got != tt.expected {
				t.Errorf("StringTrimmed() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuffer_WideCharacterOverwrite(t *testing.T) {
	b := NewBuffer(4, 1)
	b.SetString(0, 0, "日", Style{})
	if c := b.Cell(1, 0); !c.IsContinuation() {
		t.Fatalf("Cell(1, 0) = %+v, want continuation", c)
	}

	b.SetRune(1, 0, 'x', Style{})
	if c := b.Cell(0, 0); c.Rune != ' ' {
		t.Errorf("Cell(0, 0).Rune = %q, want the split wide rune blanked", c.Rune)
	}
	if got := b.StringTrimmed(); got != " x" {
		t.Errorf("StringTrimmed() = %q, want %q", got, " x")
	}
}

func TestBuffer_SetLine(t *testing.T) {
	bold := NewStyle().Bold()
	line := Line{{Text: "ab", Style: Style{}}, {Text: "cd", Style: bold}}

	b := NewBuffer(5, 1)
	if n := b.SetLine(1, 0, line); n != 4 {
		t.Errorf("SetLine() = %d, want 4", n)
	}
	if got := b.String(); got != " abcd" {
		t.Errorf("String() = %q, want %q", got, " abcd")
	}
	if c := b.Cell(3, 0); !c.Style.Equal(bold) {
		t.Errorf("Cell(3, 0).Style = %+v, want bold", c.Style)
	}
}

func TestBuffer_Fill(t *testing.T) {
	b := NewBuffer(4, 3)
	b.Fill(layout.NewRect(2, 1, 5, 5), '#', Style{})

	expected := "\n  ##\n  ##"
	if got := b.StringTrimmed(); got != expected {
		t.Errorf("StringTrimmed() = %q, want %q", got, expected)
	}
}

func TestBuffer_Diff(t *testing.T) {
	b := NewBuffer(3, 2)
	if changes := b.Diff(); len(changes) != 0 {
		t.Fatalf("Diff() on a blank buffer = %d changes, want 0", len(changes))
	}

	b.SetString(1, 1, "ab", Style{})
	changes := b.Diff()
	if len(changes) != 2 {
		t.Fatalf("Diff() = %d changes, want 2", len(changes))
	}
	if changes[0].X != 1 || changes[0].Y != 1 || changes[0].Cell.Rune != 'a' {
		t.Errorf("changes[0] = %+v, want 'a' at (1, 1)", changes[0])
	}

	b.Swap()
	if changes := b.Diff(); len(changes) != 0 {
		t.Errorf("Diff() after Swap = %d changes, want 0", len(changes))
	}

	b.Clear()
	if changes := b.Diff(); len(changes) != 2 {
		t.Errorf("Diff() after Clear = %d changes, want the 2 erased cells", len(changes))
	}
}

func TestBuffer_Invalidate(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Swap()
	b.Invalidate()
	if changes := b.Diff(); len(changes) != 4 {
		t.Errorf("Diff() after Invalidate = %d changes, want every cell", len(changes))
	}
}

func TestBuffer_Resize(t *testing.T) {
	b := NewBuffer(4, 2)
	b.SetString(0, 0, "abcd", Style{})
	b.SetString(0, 1, "efgh", Style{})

	b.Resize(2, 3)
	if got := b.StringTrimmed(); got != "ab\nef\n" {
		t.Errorf("StringTrimmed() = %q, want %q", got, "ab\nef\n")
	}
}
