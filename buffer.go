package celadon

import (
	"strings"

	"github.com/celadon-tui/celadon/internal/layout"
)

// Buffer is a double-buffered grid of cells. Frames are drawn into the back
// buffer; Diff reports what changed since the last Swap.
type Buffer struct {
	front  []Cell
	back   []Cell
	width  int
	height int
}

// CellChange is a cell that differs between the front and back buffers.
type CellChange struct {
	X, Y int
	Cell Cell
}

// NewBuffer returns a blank buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Rect returns the buffer bounds.
func (b *Buffer) Rect() layout.Rect {
	return layout.NewRect(0, 0, b.width, b.height)
}

func (b *Buffer) idx(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// Cell returns the back buffer cell at (x, y), or the zero Cell outside the
// buffer.
func (b *Buffer) Cell(x, y int) Cell {
	i := b.idx(x, y)
	if i < 0 {
		return Cell{}
	}
	return b.back[i]
}

func (b *Buffer) setCell(x, y int, c Cell) {
	if i := b.idx(x, y); i >= 0 {
		b.back[i] = c
	}
}

// SetRune writes r at (x, y). Wide characters that would be split by the
// write are blanked, and a wide character that does not fit before the
// right edge is drawn as a space.
func (b *Buffer) SetRune(x, y int, r rune, style Style) {
	if b.idx(x, y) < 0 {
		return
	}
	width := RuneWidth(r)

	b.clearWide(x, y)
	if width == 2 {
		if x+1 >= b.width {
			b.setCell(x, y, NewCell(' ', style))
			return
		}
		b.clearWide(x+1, y)
	}

	b.setCell(x, y, Cell{Rune: r, Style: style, Width: uint8(width)})
	if width == 2 {
		b.setCell(x+1, y, Cell{Style: style})
	}
}

// clearWide blanks the wide character covering (x, y), if any.
func (b *Buffer) clearWide(x, y int) {
	c := b.Cell(x, y)
	switch {
	case c.IsContinuation():
		b.setCell(x-1, y, blankCell)
		b.setCell(x, y, blankCell)
	case c.Width == 2:
		b.setCell(x, y, blankCell)
		b.setCell(x+1, y, blankCell)
	}
}

// SetString writes s from (x, y) without wrapping and returns the number of
// cells written. Cells left of the buffer are skipped.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= b.height {
		return 0
	}
	written := 0
	for _, r := range s {
		if x >= b.width {
			break
		}
		width := RuneWidth(r)
		if x >= 0 {
			b.SetRune(x, y, r, style)
			written += width
		}
		x += width
	}
	return written
}

// SetLine writes the spans of line from (x, y) and returns the number of
// cells written.
func (b *Buffer) SetLine(x, y int, line Line) int {
	written := 0
	for _, span := range line {
		written += b.SetString(x, y, span.Text, span.Style)
		for _, r := range span.Text {
			x += RuneWidth(r)
		}
	}
	return written
}

// Fill paints rect with r.
func (b *Buffer) Fill(rect layout.Rect, r rune, style Style) {
	rect = rect.Intersect(b.Rect())
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			b.SetRune(x, y, r, style)
		}
	}
}

// Clear blanks the back buffer.
func (b *Buffer) Clear() {
	for i := range b.back {
		b.back[i] = blankCell
	}
}

// Invalidate blanks the front buffer, so the next Diff reports every
// non-blank cell. Used after the terminal itself was cleared.
func (b *Buffer) Invalidate() {
	for i := range b.front {
		b.front[i] = Cell{Rune: -1}
	}
}

// Diff returns the cells that changed since the last Swap in row-major
// order.
func (b *Buffer) Diff() []CellChange {
	changes := make([]CellChange, 0, b.width)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := y*b.width + x
			if !b.back[i].Equal(b.front[i]) {
				changes = append(changes, CellChange{X: x, Y: y, Cell: b.back[i]})
			}
		}
	}
	return changes
}

// Swap makes the back buffer the displayed state.
func (b *Buffer) Swap() {
	copy(b.front, b.back)
}

// String returns the back buffer's text, one line per row.
func (b *Buffer) String() string {
	return b.text(false)
}

// StringTrimmed is like String with trailing spaces removed from each row.
func (b *Buffer) StringTrimmed() string {
	return b.text(true)
}

func (b *Buffer) text(trim bool) string {
	rows := make([]string, b.height)
	for y := range rows {
		var row strings.Builder
		for x := 0; x < b.width; x++ {
			c := b.back[y*b.width+x]
			switch {
			case c.IsContinuation():
			case c.Rune == 0:
				row.WriteByte(' ')
			default:
				row.WriteRune(c.Rune)
			}
		}
		rows[y] = row.String()
		if trim {
			rows[y] = strings.TrimRight(rows[y], " ")
		}
	}
	return strings.Join(rows, "\n")
}

// Resize changes the buffer size, keeping the overlapping content.
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if b.front != nil && width == b.width && height == b.height {
		return
	}

	front := make([]Cell, width*height)
	back := make([]Cell, width*height)
	for i := range front {
		front[i], back[i] = blankCell, blankCell
	}
	for y := 0; y < min(height, b.height); y++ {
		for x := 0; x < min(width, b.width); x++ {
			front[y*width+x] = b.front[y*b.width+x]
			back[y*width+x] = b.back[y*b.width+x]
		}
	}
	b.front, b.back = front, back
	b.width, b.height = width, height
}
