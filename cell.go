package celadon

import "github.com/mattn/go-runewidth"

// Cell is one terminal cell. A wide character fills its first cell and
// marks the next one as a continuation.
type Cell struct {
	Rune  rune
	Style Style
	Width uint8 // 1 or 2; 0 for continuation cells
}

var blankCell = NewCell(' ', Style{})

// NewCell returns a cell holding r, measuring its width.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style, Width: uint8(RuneWidth(r))}
}

// IsContinuation reports whether the cell is the second half of a wide
// character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// Equal reports whether both cells draw the same thing.
func (c Cell) Equal(other Cell) bool {
	return c == other
}

// RuneWidth returns the number of cells r occupies, at least one.
func RuneWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 1)
}
